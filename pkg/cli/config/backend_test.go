package config_test

import (
	"testing"
	"time"

	"github.com/lab9-dev/pythia/pkg/cli/config"
	"github.com/m-mizutani/gt"
)

func TestBackend_Configure(t *testing.T) {
	t.Run("fails fast when base URL is missing", func(t *testing.T) {
		cfg := config.NewBackendForTest("", 5*time.Minute, 10*time.Minute)
		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrMissingBaseURL)
	})

	t.Run("rejects non-positive TTLs", func(t *testing.T) {
		cfg := config.NewBackendForTest("http://localhost:3000", 0, 10*time.Minute)
		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrInvalidTTL)
	})

	t.Run("builds a client from valid settings", func(t *testing.T) {
		cfg := config.NewBackendForTest("http://localhost:3000", 5*time.Minute, 10*time.Minute)
		client, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, client).NotNil()

		policy := cfg.RetryPolicy()
		gt.Value(t, policy.MaxAttempts).Equal(3)
		gt.Value(t, policy.InitialDelay).Equal(time.Second)
		gt.Value(t, cfg.TeamTTL()).Equal(5 * time.Minute)
		gt.Value(t, cfg.EventsTTL()).Equal(10 * time.Minute)
	})

	t.Run("returns flags", func(t *testing.T) {
		cfg := config.NewBackendForTest("", 0, 0)
		gt.Value(t, len(cfg.Flags())).Equal(6)
	})
}
