package config

import (
	"log/slog"
	"time"

	"github.com/lab9-dev/pythia/pkg/service/backend"
	"github.com/lab9-dev/pythia/pkg/utils/retry"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Backend holds configuration for the team/events REST API and the
// caches built on top of it.
type Backend struct {
	baseURL      string
	fetchTimeout time.Duration
	teamTTL      time.Duration
	eventsTTL    time.Duration
	maxAttempts  int
	initialDelay time.Duration
}

// Flags returns CLI flags for backend configuration
func (b *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-base-url",
			Usage:       "Base URL of the backend REST API",
			Sources:     cli.EnvVars("PYTHIA_API_BASE_URL"),
			Destination: &b.baseURL,
		},
		&cli.DurationFlag{
			Name:        "fetch-timeout",
			Usage:       "Timeout for backend data fetches",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("PYTHIA_FETCH_TIMEOUT"),
			Destination: &b.fetchTimeout,
		},
		&cli.DurationFlag{
			Name:        "team-cache-ttl",
			Usage:       "Freshness window of the team roster cache",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("PYTHIA_TEAM_CACHE_TTL"),
			Destination: &b.teamTTL,
		},
		&cli.DurationFlag{
			Name:        "events-cache-ttl",
			Usage:       "Freshness window of the events cache",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("PYTHIA_EVENTS_CACHE_TTL"),
			Destination: &b.eventsTTL,
		},
		&cli.IntFlag{
			Name:        "retry-max-attempts",
			Usage:       "Maximum attempts for upstream calls",
			Value:       retry.DefaultMaxAttempts,
			Sources:     cli.EnvVars("PYTHIA_RETRY_MAX_ATTEMPTS"),
			Destination: &b.maxAttempts,
		},
		&cli.DurationFlag{
			Name:        "retry-initial-delay",
			Usage:       "Initial delay between retry attempts (doubles each attempt)",
			Value:       retry.DefaultInitialDelay,
			Sources:     cli.EnvVars("PYTHIA_RETRY_INITIAL_DELAY"),
			Destination: &b.initialDelay,
		},
	}
}

// Validate checks required values; called before any request is served.
func (b *Backend) Validate() error {
	if b.baseURL == "" {
		return goerr.Wrap(ErrMissingBaseURL, "set --api-base-url or PYTHIA_API_BASE_URL")
	}
	if b.teamTTL <= 0 || b.eventsTTL <= 0 {
		return goerr.Wrap(ErrInvalidTTL,
			"TTL values must be positive",
			goerr.V("team_ttl", b.teamTTL),
			goerr.V("events_ttl", b.eventsTTL),
		)
	}
	return nil
}

// Configure creates the backend API client from the configured flags.
func (b *Backend) Configure() (*backend.Client, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return backend.New(b.baseURL, backend.WithTimeout(b.fetchTimeout))
}

// RetryPolicy returns the retry policy for upstream calls.
func (b *Backend) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:  b.maxAttempts,
		InitialDelay: b.initialDelay,
	}
}

// TeamTTL returns the team cache freshness window.
func (b *Backend) TeamTTL() time.Duration {
	return b.teamTTL
}

// EventsTTL returns the events cache freshness window.
func (b *Backend) EventsTTL() time.Duration {
	return b.eventsTTL
}

// LogValue returns log attributes for the backend configuration
func (b *Backend) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", b.baseURL),
		slog.Duration("fetch_timeout", b.fetchTimeout),
		slog.Duration("team_ttl", b.teamTTL),
		slog.Duration("events_ttl", b.eventsTTL),
		slog.Int("retry_max_attempts", b.maxAttempts),
		slog.Duration("retry_initial_delay", b.initialDelay),
	)
}
