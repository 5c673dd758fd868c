package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/meridiandb/harness/cmd"
	"github.com/meridiandb/harness/config"
)

func main() {
	ctx := context.Background()

	level := &slog.LevelVar{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Handlers close over cfg; Before fills it in once flags are parsed.
	cfg := config.Default()

	root := &cli.Command{
		Name:  "harness",
		Usage: "Build and test tooling for Meridian",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the harness config file",
				Value:   "harness.yml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("verbose") {
				level.Set(slog.LevelDebug)
			}

			loaded, err := config.Load(c.String("config"))
			if err != nil {
				return ctx, err
			}
			*cfg = *loaded

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:   "version",
				Usage:  "Print the version of the current source tree",
				Action: cmd.VersionHandler(cfg),
			},
			{
				Name:   "wait",
				Usage:  "Wait until the product accepts queries",
				Action: cmd.WaitHandler(cfg),
			},
			{
				Name:   "releases",
				Usage:  "List released versions from the product checkout",
				Action: cmd.ReleasesHandler(cfg),
			},
			{
				Name:      "check",
				Usage:     "Run checks against the running product",
				ArgsUsage: "[check ...]",
				Action:    cmd.CheckHandler(cfg),
			},
		},
	}

	if err := root.Run(ctx, os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
