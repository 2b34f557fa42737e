package cli

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/lab9-dev/pythia/pkg/cli/config"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var backendCfg config.Backend
	var geminiCfg config.Gemini

	flags := append(backendCfg.Flags(), geminiCfg.Flags()...)

	return &cli.Command{
		Name:      "chat",
		Usage:     "Ask a single question from the terminal",
		ArgsUsage: "<question>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if question == "" {
				return goerr.New("question is required, e.g. pythia chat \"Who is the president?\"")
			}

			uc, err := buildUseCases(&backendCfg, &geminiCfg)
			if err != nil {
				return err
			}

			result := uc.SendMessage(ctx, question)

			if !result.Success {
				color.New(color.FgRed).Println(result.Text)
				return goerr.New("chat failed", goerr.V("kind", result.Error.String()))
			}

			color.New(color.FgCyan).Println(result.Text)
			if result.Metadata != nil {
				color.New(color.Faint).Printf("(team: %d, upcoming: %d, past: %d)\n",
					result.Metadata.TeamCount,
					result.Metadata.UpcomingCount,
					result.Metadata.PastCount,
				)
			}

			return nil
		},
	}
}
