package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lab9-dev/pythia/pkg/domain/model"
	"github.com/lab9-dev/pythia/pkg/service/event"
	"github.com/lab9-dev/pythia/pkg/service/team"
	"github.com/lab9-dev/pythia/pkg/service/worker"
	"github.com/lab9-dev/pythia/pkg/utils/retry"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

var noRetry = retry.Policy{MaxAttempts: 1, InitialDelay: time.Millisecond}

type countingTeamSource struct {
	calls int32
	err   error
}

func (s *countingTeamSource) FetchTeam(ctx context.Context) ([]model.TeamMember, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return []model.TeamMember{{ID: "1", Name: "Jane", AccessCode: "PRESIDENT", Year: 2025}}, nil
}

type countingEventSource struct {
	calls int32
}

func (s *countingEventSource) FetchEvents(ctx context.Context) ([]model.EventRecord, error) {
	atomic.AddInt32(&s.calls, 1)
	return nil, nil
}

func TestCacheWarmer(t *testing.T) {
	t.Run("refreshes both caches on the interval", func(t *testing.T) {
		teamSrc := &countingTeamSource{}
		eventSrc := &countingEventSource{}
		w := worker.NewCacheWarmer(
			team.New(teamSrc, team.WithRetryPolicy(noRetry)),
			event.New(eventSrc, event.WithRetryPolicy(noRetry)),
			10*time.Millisecond,
		)

		gt.NoError(t, w.Start(context.Background()))

		time.Sleep(50 * time.Millisecond)
		w.Stop()

		// Initial warm plus at least one tick.
		gt.Bool(t, atomic.LoadInt32(&teamSrc.calls) >= 2).True()
		gt.Bool(t, atomic.LoadInt32(&eventSrc.calls) >= 2).True()
	})

	t.Run("stop halts the loop", func(t *testing.T) {
		teamSrc := &countingTeamSource{}
		eventSrc := &countingEventSource{}
		w := worker.NewCacheWarmer(
			team.New(teamSrc, team.WithRetryPolicy(noRetry)),
			event.New(eventSrc, event.WithRetryPolicy(noRetry)),
			10*time.Millisecond,
		)

		gt.NoError(t, w.Start(context.Background()))
		w.Stop()

		after := atomic.LoadInt32(&teamSrc.calls)
		time.Sleep(30 * time.Millisecond)
		gt.Value(t, atomic.LoadInt32(&teamSrc.calls)).Equal(after)
	})

	t.Run("a failing source does not stop the loop", func(t *testing.T) {
		teamSrc := &countingTeamSource{err: goerr.New("upstream down")}
		eventSrc := &countingEventSource{}
		w := worker.NewCacheWarmer(
			team.New(teamSrc, team.WithRetryPolicy(noRetry)),
			event.New(eventSrc, event.WithRetryPolicy(noRetry)),
			10*time.Millisecond,
		)

		gt.NoError(t, w.Start(context.Background()))
		time.Sleep(50 * time.Millisecond)
		w.Stop()

		gt.Bool(t, atomic.LoadInt32(&eventSrc.calls) >= 2).True()
	})
}
