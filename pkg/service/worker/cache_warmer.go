package worker

import (
	"context"
	"time"

	"github.com/lab9-dev/pythia/pkg/service/event"
	"github.com/lab9-dev/pythia/pkg/service/team"
	"github.com/lab9-dev/pythia/pkg/utils/logging"
)

// CacheWarmer periodically refreshes both caches so the zero-latency
// fresh-read path stays hot between user messages.
//
// Architecture assumptions:
// - Single server instance (no distributed coordination)
// - A failed refresh keeps the previous snapshot; the caches already
//   degrade gracefully, the warmer only reduces cold reads
type CacheWarmer struct {
	teamCache  *team.Cache
	eventCache *event.Cache
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewCacheWarmer creates a warmer that refreshes on the given interval.
func NewCacheWarmer(teamCache *team.Cache, eventCache *event.Cache, interval time.Duration) *CacheWarmer {
	return &CacheWarmer{
		teamCache:  teamCache,
		eventCache: eventCache,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background refresh loop. The initial warm runs in the
// background and does not block server startup.
func (w *CacheWarmer) Start(ctx context.Context) error {
	logging.Default().Info("cache warmer starting", "interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the warmer to stop and waits for completion.
func (w *CacheWarmer) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("cache warmer stopped")
}

func (w *CacheWarmer) run(ctx context.Context) {
	defer close(w.doneCh)

	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.warm(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.From(ctx).Info("cache warmer context cancelled")
			return
		}
	}
}

// warm refreshes each cache; failures are logged and the loop continues.
func (w *CacheWarmer) warm(ctx context.Context) {
	if err := w.teamCache.Refresh(ctx); err != nil {
		logging.From(ctx).Warn("team cache warm failed (will retry next interval)",
			"error", err.Error())
	}
	if err := w.eventCache.Refresh(ctx); err != nil {
		logging.From(ctx).Warn("event cache warm failed (will retry next interval)",
			"error", err.Error())
	}
}
