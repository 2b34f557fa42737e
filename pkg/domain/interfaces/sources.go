package interfaces

import (
	"context"

	"github.com/lab9-dev/pythia/pkg/domain/model"
)

// TeamSource fetches the raw team roster from the upstream API.
type TeamSource interface {
	FetchTeam(ctx context.Context) ([]model.TeamMember, error)
}

// EventSource fetches the raw event records from the upstream API.
type EventSource interface {
	FetchEvents(ctx context.Context) ([]model.EventRecord, error)
}

// Generator produces a completion for an assembled prompt. The system
// instruction is part of the generator's own configuration, not the
// prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
