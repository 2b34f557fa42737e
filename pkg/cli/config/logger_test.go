package config_test

import (
	"testing"

	"github.com/lab9-dev/pythia/pkg/cli/config"
	"github.com/m-mizutani/gt"
)

func TestLogger_Configure(t *testing.T) {
	t.Run("accepts known levels and formats", func(t *testing.T) {
		cfg := config.NewLoggerForTest("debug", "json", "stderr")
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		cfg := config.NewLoggerForTest("verbose", "console", "stdout")
		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogLevel)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "xml", "stdout")
		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogFormat)
	})

	t.Run("writes to a file path", func(t *testing.T) {
		path := t.TempDir() + "/pythia.log"
		cfg := config.NewLoggerForTest("info", "json", path)
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})
}
