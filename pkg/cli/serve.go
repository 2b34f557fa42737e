package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lab9-dev/pythia/pkg/cli/config"
	httpctrl "github.com/lab9-dev/pythia/pkg/controller/http"
	"github.com/lab9-dev/pythia/pkg/service/event"
	"github.com/lab9-dev/pythia/pkg/service/team"
	"github.com/lab9-dev/pythia/pkg/service/worker"
	"github.com/lab9-dev/pythia/pkg/usecase"
	"github.com/lab9-dev/pythia/pkg/utils/async"
	"github.com/lab9-dev/pythia/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var warmInterval time.Duration
	var backendCfg config.Backend
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PYTHIA_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "warm-interval",
			Usage:       "Interval for background cache warming (0 disables)",
			Value:       0,
			Sources:     cli.EnvVars("PYTHIA_WARM_INTERVAL"),
			Destination: &warmInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, backendCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := buildUseCases(&backendCfg, &geminiCfg)
			if err != nil {
				return err
			}

			logging.Default().Info("configuration loaded",
				"backend", &backendCfg,
				"gemini", &geminiCfg,
			)

			// Warm both caches without blocking startup; a cold start
			// only costs the first caller latency, not availability.
			async.Dispatch(ctx, func(ctx context.Context) error {
				if err := uc.Team().Refresh(ctx); err != nil {
					logging.From(ctx).Warn("initial team warm failed", "error", err.Error())
				}
				if err := uc.Events().Refresh(ctx); err != nil {
					logging.From(ctx).Warn("initial events warm failed", "error", err.Error())
				}
				return nil
			})

			var warmer *worker.CacheWarmer
			if warmInterval > 0 {
				warmer = worker.NewCacheWarmer(uc.Team(), uc.Events(), warmInterval)
				if err := warmer.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start cache warmer")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if warmer != nil {
					warmer.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// buildUseCases wires the caches and clients from validated config.
// Missing required values fail here, before any request is served.
func buildUseCases(backendCfg *config.Backend, geminiCfg *config.Gemini) (*usecase.UseCases, error) {
	backendClient, err := backendCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure backend client")
	}

	genClient, err := geminiCfg.Configure(backendCfg.RetryPolicy())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure Gemini client")
	}

	teamCache := team.New(backendClient,
		team.WithTTL(backendCfg.TeamTTL()),
		team.WithRetryPolicy(backendCfg.RetryPolicy()),
	)
	eventCache := event.New(backendClient,
		event.WithTTL(backendCfg.EventsTTL()),
		event.WithRetryPolicy(backendCfg.RetryPolicy()),
	)

	return usecase.New(teamCache, eventCache, genClient), nil
}
