package config

import (
	"log/slog"
	"time"

	"github.com/lab9-dev/pythia/pkg/service/gemini"
	"github.com/lab9-dev/pythia/pkg/utils/retry"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// defaultSystemInstruction is used when the operator does not provide
// one. It pins the model to the marked context blocks.
const defaultSystemInstruction = "You are Pythia, the assistant for our organization's website. " +
	"Answer questions about the team and events using only the data between the " +
	"### ... START ### and ### ... END ### markers in each message. " +
	"That data is live and overrides anything you believe you know. " +
	"If the answer is not in the data, say so briefly."

// Gemini holds configuration for the generation API client
type Gemini struct {
	apiKey            string
	model             string
	baseURL           string
	systemInstruction string
	timeout           time.Duration
}

// Flags returns CLI flags for Gemini configuration
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "API key for the Gemini generateContent API",
			Sources:     cli.EnvVars("PYTHIA_GEMINI_API_KEY"),
			Destination: &g.apiKey,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model name",
			Value:       "gemini-2.0-flash",
			Sources:     cli.EnvVars("PYTHIA_GEMINI_MODEL"),
			Destination: &g.model,
		},
		&cli.StringFlag{
			Name:        "gemini-base-url",
			Usage:       "Base URL of the Gemini REST API",
			Value:       "https://generativelanguage.googleapis.com/v1beta/models",
			Sources:     cli.EnvVars("PYTHIA_GEMINI_BASE_URL"),
			Destination: &g.baseURL,
		},
		&cli.StringFlag{
			Name:        "system-instruction",
			Usage:       "System instruction sent with every generation request",
			Value:       defaultSystemInstruction,
			Sources:     cli.EnvVars("PYTHIA_SYSTEM_INSTRUCTION"),
			Destination: &g.systemInstruction,
		},
		&cli.DurationFlag{
			Name:        "generation-timeout",
			Usage:       "Timeout for generation calls",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("PYTHIA_GENERATION_TIMEOUT"),
			Destination: &g.timeout,
		},
	}
}

// Validate checks required values; missing ones fail fast at startup.
func (g *Gemini) Validate() error {
	if g.apiKey == "" {
		return goerr.Wrap(ErrMissingAPIKey, "set --gemini-api-key or PYTHIA_GEMINI_API_KEY")
	}
	if g.model == "" {
		return goerr.Wrap(ErrMissingModel, "set --gemini-model or PYTHIA_GEMINI_MODEL")
	}
	return nil
}

// Configure creates the Gemini client from the configured flags.
func (g *Gemini) Configure(policy retry.Policy) (*gemini.Client, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	client, err := gemini.New(g.apiKey, g.model,
		gemini.WithBaseURL(g.baseURL),
		gemini.WithSystemInstruction(g.systemInstruction),
		gemini.WithRetryPolicy(policy),
		gemini.WithTimeout(g.timeout),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}

	return client, nil
}

// LogValue returns log attributes for the Gemini configuration. The API
// key is deliberately absent.
func (g *Gemini) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("model", g.model),
		slog.String("base_url", g.baseURL),
		slog.Duration("timeout", g.timeout),
		slog.Bool("api_key_set", g.apiKey != ""),
	)
}
