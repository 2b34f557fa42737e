package usecase

import (
	"github.com/lab9-dev/pythia/pkg/domain/interfaces"
	"github.com/lab9-dev/pythia/pkg/service/event"
	"github.com/lab9-dev/pythia/pkg/service/team"
)

// UseCases is the façade consumed by the UI layer: SendMessage, Ping and
// GetStats. It owns the cache instances; nothing in this package keeps
// process-global state.
type UseCases struct {
	team      *team.Cache
	events    *event.Cache
	generator interfaces.Generator
}

type Option func(*UseCases)

// New creates the use case container.
func New(teamCache *team.Cache, eventCache *event.Cache, generator interfaces.Generator, opts ...Option) *UseCases {
	uc := &UseCases{
		team:      teamCache,
		events:    eventCache,
		generator: generator,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Team exposes the roster cache for derived lookups.
func (uc *UseCases) Team() *team.Cache {
	return uc.team
}

// Events exposes the events cache.
func (uc *UseCases) Events() *event.Cache {
	return uc.events
}
