package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/lab9-dev/pythia/pkg/cli/config"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdPing() *cli.Command {
	var backendCfg config.Backend
	var geminiCfg config.Gemini

	flags := append(backendCfg.Flags(), geminiCfg.Flags()...)

	return &cli.Command{
		Name:  "ping",
		Usage: "Check connectivity to the backend API and the generation API",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := buildUseCases(&backendCfg, &geminiCfg)
			if err != nil {
				return err
			}

			result := uc.Ping(ctx)

			printCheck("team", result.Services.Team)
			printCheck("events", result.Services.Events)
			printCheck("generation", result.Services.Generation)

			if !result.Healthy {
				return goerr.New("one or more services are unhealthy")
			}
			return nil
		},
	}
}

func printCheck(name string, ok bool) {
	if ok {
		color.New(color.FgGreen).Printf("%-12s OK\n", name)
	} else {
		color.New(color.FgRed).Printf("%-12s FAIL\n", name)
	}
}
