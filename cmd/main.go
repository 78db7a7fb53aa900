package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:    "lyrx",
		Usage:   "Search songs and read lyrics from lyrics.ovh",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before:   runner.Setup,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrEmptyTerm), errors.Is(err, shared.ErrMissingArgument), errors.Is(err, shared.ErrInvalidFlag):
			os.Exit(2)
		case errors.Is(err, shared.ErrLyricsNotFound):
			os.Exit(1)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
