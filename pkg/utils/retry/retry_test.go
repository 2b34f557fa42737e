package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lab9-dev/pythia/pkg/utils/retry"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestDo(t *testing.T) {
	policy := retry.Policy{MaxAttempts: 3, InitialDelay: time.Millisecond}

	t.Run("returns immediately on first success", func(t *testing.T) {
		calls := 0
		v, err := retry.Do(context.Background(), policy, func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		})
		gt.NoError(t, err)
		gt.Value(t, v).Equal("ok")
		gt.Value(t, calls).Equal(1)
	})

	t.Run("succeeds on the final attempt", func(t *testing.T) {
		calls := 0
		v, err := retry.Do(context.Background(), policy, func(ctx context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, goerr.New("transient failure")
			}
			return 42, nil
		})
		gt.NoError(t, err)
		gt.Value(t, v).Equal(42)
		gt.Value(t, calls).Equal(3)
	})

	t.Run("exhaustion propagates the last failure", func(t *testing.T) {
		sentinel := goerr.New("persistent failure")
		calls := 0
		_, err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 2, InitialDelay: time.Millisecond},
			func(ctx context.Context) (int, error) {
				calls++
				return 0, goerr.Wrap(sentinel, "attempt failed")
			})
		gt.Error(t, err).Is(sentinel)
		gt.Value(t, calls).Equal(2)
	})

	t.Run("delay doubles between attempts", func(t *testing.T) {
		p := retry.Policy{MaxAttempts: 3, InitialDelay: 10 * time.Millisecond}
		start := time.Now()
		_, err := retry.Do(context.Background(), p, func(ctx context.Context) (int, error) {
			return 0, errors.New("always fails")
		})
		gt.Error(t, err)
		// 10ms + 20ms of backoff before the final attempt
		gt.Bool(t, time.Since(start) >= 30*time.Millisecond).True()
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		_, err := retry.Do(ctx, retry.Policy{MaxAttempts: 3, InitialDelay: time.Hour},
			func(ctx context.Context) (int, error) {
				calls++
				return 0, errors.New("fails")
			})
		gt.Error(t, err).Is(context.Canceled)
		gt.Value(t, calls).Equal(1)
	})

	t.Run("zero policy falls back to defaults", func(t *testing.T) {
		v, err := retry.Do(context.Background(), retry.Policy{}, func(ctx context.Context) (string, error) {
			return "ok", nil
		})
		gt.NoError(t, err)
		gt.Value(t, v).Equal("ok")
	})
}
