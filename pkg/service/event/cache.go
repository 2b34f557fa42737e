package event

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lab9-dev/pythia/pkg/domain/interfaces"
	"github.com/lab9-dev/pythia/pkg/domain/model"
	"github.com/lab9-dev/pythia/pkg/utils/errutil"
	"github.com/lab9-dev/pythia/pkg/utils/logging"
	"github.com/lab9-dev/pythia/pkg/utils/retry"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTTL bounds how long an event snapshot is served without a
	// refetch. Independent of the team cache TTL.
	DefaultTTL = 10 * time.Minute

	// maxPastEvents bounds the compacted past-events subset so the
	// prompt context stays small.
	maxPastEvents = 5
)

// Cache holds the event snapshot, split into upcoming and past subsets
// at fetch time. Reads never fail; a failed fetch falls back to the
// previous snapshot when it holds any entries.
type Cache struct {
	source interfaces.EventSource
	ttl    time.Duration
	policy retry.Policy
	now    func() time.Time

	group singleflight.Group

	mu    sync.RWMutex
	entry *entry
}

type entry struct {
	set       model.EventSet
	fetchedAt time.Time
}

type Option func(*Cache)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithRetryPolicy overrides the upstream retry policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Cache) {
		c.policy = p
	}
}

// WithClock replaces the wall clock (for tests).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an events cache around the given source.
func New(source interfaces.EventSource, opts ...Option) *Cache {
	c := &Cache{
		source: source,
		ttl:    DefaultTTL,
		policy: retry.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetEvents returns the current event snapshot, fetching from upstream
// when the cache is stale. Concurrent cache misses share one fetch.
func (c *Cache) GetEvents(ctx context.Context) model.EventSet {
	if set, ok := c.fresh(); ok {
		return set
	}

	v, err, _ := c.group.Do("events", func() (any, error) {
		if set, ok := c.fresh(); ok {
			return set, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		errutil.Handle(ctx, err, "events fetch failed, serving cached events")
		return c.stale()
	}

	return v.(model.EventSet)
}

// Refresh forces an upstream fetch and replaces the cache entry.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err, _ := c.group.Do("events", func() (any, error) {
		return c.refresh(ctx)
	})
	return err
}

// Clear drops the cached events; the next read fetches from upstream.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

func (c *Cache) refresh(ctx context.Context) (model.EventSet, error) {
	records, err := retry.Do(ctx, c.policy, c.source.FetchEvents)
	if err != nil {
		return model.EventSet{}, err
	}

	set := partition(records)

	c.mu.Lock()
	c.entry = &entry{set: set, fetchedAt: c.now()}
	c.mu.Unlock()

	logging.From(ctx).Debug("events refreshed",
		"upcoming", len(set.Upcoming), "past", len(set.Past))

	return set.Clone(), nil
}

// partition splits records by Info.IsPast. Upcoming events keep their
// full records in upstream order. Past events are sorted newest first,
// truncated to maxPastEvents, and compacted to their info headers.
func partition(records []model.EventRecord) model.EventSet {
	var set model.EventSet
	for _, r := range records {
		if r.Info.IsPast {
			set.Past = append(set.Past, r.Info)
		} else {
			set.Upcoming = append(set.Upcoming, r)
		}
	}

	sort.SliceStable(set.Past, func(i, j int) bool {
		return set.Past[i].Date.After(set.Past[j].Date)
	})
	if len(set.Past) > maxPastEvents {
		set.Past = set.Past[:maxPastEvents]
	}

	return set
}

func (c *Cache) fresh() (model.EventSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil || c.now().Sub(c.entry.fetchedAt) >= c.ttl {
		return model.EventSet{}, false
	}
	return c.entry.set.Clone(), true
}

func (c *Cache) stale() model.EventSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil || c.entry.set.Empty() {
		return model.EventSet{}
	}
	return c.entry.set.Clone()
}
