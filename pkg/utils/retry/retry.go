package retry

import (
	"context"
	"time"

	"github.com/lab9-dev/pythia/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = time.Second
)

// Policy controls how an operation is retried. The delay doubles after
// each failed attempt (pure exponential backoff, no jitter).
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// Default returns the standard policy used by upstream calls.
func Default() Policy {
	return Policy{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
	}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = DefaultInitialDelay
	}
	return p
}

// Do runs op up to p.MaxAttempts times, waiting InitialDelay * 2^(k-1)
// after the k-th failure. The failure of the final attempt is returned
// unchanged so callers can classify it with errors.Is.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	p = p.normalized()

	var zero T
	var lastErr error
	delay := p.InitialDelay

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt == p.MaxAttempts {
			break
		}

		logging.From(ctx).Debug("operation failed, retrying",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"delay", delay.String(),
			"error", err.Error(),
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, goerr.Wrap(ctx.Err(), "retry aborted", goerr.V("attempt", attempt))
		}
		delay *= 2
	}

	return zero, lastErr
}
