package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lab9-dev/pythia/pkg/domain/model"
	"github.com/lab9-dev/pythia/pkg/domain/types"
	"github.com/lab9-dev/pythia/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Fixed user-facing messages. Every failure path yields exactly one of
// these; raw transport or API errors never reach the user.
const (
	MsgInvalidInput  = "Please type a question first."
	MsgConfigError   = "The assistant is not configured correctly. Please contact the site administrator."
	MsgEmptyResponse = "I couldn't come up with an answer for that. Try rephrasing your question."
	MsgTimeout       = "That took too long to answer. Please try again in a moment."
	MsgNetworkError  = "Something went wrong while answering. Please try again."
)

// SendMessage answers one user question against the current team and
// event snapshots. It never returns an error: invalid input and
// unexpected failures produce a structured failure envelope, generation
// failures produce their fixed fallback text.
func (uc *UseCases) SendMessage(ctx context.Context, text string) (result model.ChatResult) {
	query := strings.TrimSpace(text)
	if query == "" {
		return model.ChatResult{
			Success: false,
			Text:    MsgInvalidInput,
			Error:   types.ErrKindInvalidInput,
		}
	}

	msgID := uuid.NewString()
	ctx = logging.With(ctx, logging.From(ctx).With("message_id", msgID))

	defer func() {
		if r := recover(); r != nil {
			logging.From(ctx).Error("panic while answering message", "panic", r)
			result = model.ChatResult{
				Success: false,
				Text:    MsgNetworkError,
				Error:   types.ErrKindGenerationNetwork,
			}
		}
	}()

	// Both caches absorb upstream failures internally, so the fan-out
	// only waits for whatever data is available.
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
	if err := g.Wait(); err != nil {
		// Cannot happen with the current goroutines; kept so a future
		// fallible branch is not silently dropped.
		logging.From(ctx).Error("data fan-out failed", "error", err.Error())
	}

	text, kind := uc.answer(ctx, query, members, events)

	return model.ChatResult{
		Success: true,
		Text:    text,
		Error:   kind,
		Metadata: &model.ChatMetadata{
			MessageID:     msgID,
			TeamCount:     len(members),
			UpcomingCount: len(events.Upcoming),
			PastCount:     len(events.Past),
			Timestamp:     time.Now().UTC(),
		},
	}
}

// answer runs the generation call and maps every failure class to its
// fixed user-facing message. The mapping is total.
func (uc *UseCases) answer(ctx context.Context, query string, members []model.TeamMember, events model.EventSet) (string, types.ErrorKind) {
	prompt := BuildContext(members, events) + "Question: " + query

	reply, err := uc.generator.Generate(ctx, prompt)
	if err == nil {
		return reply, types.ErrKindNone
	}

	kind := types.KindOf(err)
	logging.From(ctx).Error("generation failed",
		"kind", kind.String(),
		"error", goerr.Unwrap(err),
	)

	switch kind {
	case types.ErrKindGenerationConfig:
		return MsgConfigError, kind
	case types.ErrKindGenerationEmpty:
		return MsgEmptyResponse, kind
	case types.ErrKindGenerationTimeout:
		return MsgTimeout, kind
	default:
		return MsgNetworkError, types.ErrKindGenerationNetwork
	}
}
