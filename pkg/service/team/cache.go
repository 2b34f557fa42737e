package team

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lab9-dev/pythia/pkg/domain/interfaces"
	"github.com/lab9-dev/pythia/pkg/domain/model"
	"github.com/lab9-dev/pythia/pkg/utils/errutil"
	"github.com/lab9-dev/pythia/pkg/utils/logging"
	"github.com/lab9-dev/pythia/pkg/utils/retry"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL bounds how long a roster snapshot is served without a
// refetch.
const DefaultTTL = 5 * time.Minute

// Cache holds the team roster with bounded freshness. Reads never fail:
// on upstream trouble the cache degrades to its previous snapshot, or to
// an empty roster if it never had one. Concurrent cache misses are
// collapsed into a single upstream fetch.
type Cache struct {
	source interfaces.TeamSource
	ttl    time.Duration
	policy retry.Policy
	now    func() time.Time

	group singleflight.Group

	mu    sync.RWMutex
	entry *entry
}

type entry struct {
	members   []model.TeamMember
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

// New creates a team cache around the given source.
func New(source interfaces.TeamSource, opts ...Option) *Cache {
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

// GetMembers returns the current roster snapshot. A fresh cache entry is
// returned without any upstream call; otherwise one fetch runs and all
// concurrent callers share its result.
func (c *Cache) GetMembers(ctx context.Context) []model.TeamMember {
	if members, ok := c.fresh(); ok {
		return members
	}

	v, err, _ := c.group.Do("team", func() (any, error) {
		// Another caller may have refreshed while this one waited on
		// the flight group.
		if members, ok := c.fresh(); ok {
			return members, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		errutil.Handle(ctx, err, "team fetch failed, serving cached roster")
		return c.stale()
	}

	return v.([]model.TeamMember)
}

// Refresh forces an upstream fetch and replaces the cache entry. Used by
// health checks and the cache warm worker.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err, _ := c.group.Do("team", func() (any, error) {
		return c.refresh(ctx)
	})
	return err
}

// Clear drops the cached roster; the next read fetches from upstream.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

// FindByName returns the first member whose name contains the query,
// case-insensitively, or nil when there is no match.
func (c *Cache) FindByName(ctx context.Context, name string) *model.TeamMember {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return nil
	}
	for _, m := range c.GetMembers(ctx) {
		if strings.Contains(strings.ToLower(m.Name), q) {
			found := m.Clone()
			return &found
		}
	}
	return nil
}

// FindByRole returns members matching the role code. Exact code matches
// are ordered before substring matches.
func (c *Cache) FindByRole(ctx context.Context, role string) []model.TeamMember {
	q := strings.ToLower(strings.TrimSpace(role))
	if q == "" {
		return nil
	}

	var exact, partial []model.TeamMember
	for _, m := range c.GetMembers(ctx) {
		code := strings.ToLower(m.AccessCode)
		switch {
		case code == q:
			exact = append(exact, m)
		case strings.Contains(code, q):
			partial = append(partial, m)
		}
	}
	return append(exact, partial...)
}

// BoardMembers returns the members holding a board role.
func (c *Cache) BoardMembers(ctx context.Context) []model.TeamMember {
	var board []model.TeamMember
	for _, m := range c.GetMembers(ctx) {
		if m.IsBoard() {
			board = append(board, m)
		}
	}
	return board
}

func (c *Cache) refresh(ctx context.Context) ([]model.TeamMember, error) {
	fetched, err := retry.Do(ctx, c.policy, c.source.FetchTeam)
	if err != nil {
		return nil, err
	}

	members := make([]model.TeamMember, 0, len(fetched))
	for _, m := range fetched {
		if m.Name == "" {
			continue
		}
		members = append(members, m)
	}

	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Year != members[j].Year {
			return members[i].Year > members[j].Year
		}
		return strings.ToLower(members[i].Name) < strings.ToLower(members[j].Name)
	})

	c.mu.Lock()
	c.entry = &entry{members: members, fetchedAt: c.now()}
	c.mu.Unlock()

	logging.From(ctx).Debug("team roster refreshed", "members", len(members))

	return cloneMembers(members), nil
}

func (c *Cache) fresh() ([]model.TeamMember, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil || c.now().Sub(c.entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return cloneMembers(c.entry.members), true
}

func (c *Cache) stale() []model.TeamMember {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return []model.TeamMember{}
	}
	return cloneMembers(c.entry.members)
}

func cloneMembers(members []model.TeamMember) []model.TeamMember {
	out := make([]model.TeamMember, len(members))
	for i, m := range members {
		out[i] = m.Clone()
	}
	return out
}
