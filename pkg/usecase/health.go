package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/lab9-dev/pythia/pkg/domain/model"
	"github.com/lab9-dev/pythia/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// healthProbePrompt keeps the generation sub-check as small as possible.
const healthProbePrompt = "Reply with the single word: pong"

// Ping independently exercises the team fetch, the events fetch and a
// minimal generation call. Healthy is true iff all three succeed. This
// is the operational health surface, not a user-facing chat path.
func (uc *UseCases) Ping(ctx context.Context) model.HealthResult {
	var health model.ServiceHealth

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		health.Team = uc.team.Refresh(gctx) == nil
		return nil
	})
	g.Go(func() error {
		health.Events = uc.events.Refresh(gctx) == nil
		return nil
	})
	g.Go(func() error {
		reply, err := uc.generator.Generate(gctx, healthProbePrompt)
		health.Generation = err == nil && strings.TrimSpace(reply) != ""
		return nil
	})
	_ = g.Wait()

	result := model.HealthResult{
		Healthy:  health.Team && health.Events && health.Generation,
		Services: health,
	}

	if !result.Healthy {
		logging.From(ctx).Warn("health check degraded",
			"team", health.Team,
			"events", health.Events,
			"generation", health.Generation,
		)
	}

	return result
}

// GetStats reports the sizes of the cached snapshots. It reads through
// the caches, so a stale snapshot is refreshed on the way.
func (uc *UseCases) GetStats(ctx context.Context) model.Stats {
	var members []model.TeamMember
	var events model.EventSet

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		members = uc.team.GetMembers(gctx)
		return nil
	})
	g.Go(func() error {
		events = uc.events.GetEvents(gctx)
		return nil
	})
	_ = g.Wait()

	return model.Stats{
		Team: model.TeamStats{
			TotalMembers: len(members),
		},
		Events: model.EventStats{
			UpcomingCount: len(events.Upcoming),
			PastCount:     len(events.Past),
		},
		Timestamp: time.Now().UTC(),
	}
}
