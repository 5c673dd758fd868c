package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/meridiandb/harness/cargo"
	"github.com/meridiandb/harness/checks"
	"github.com/meridiandb/harness/config"
	"github.com/meridiandb/harness/fixtures"
	"github.com/meridiandb/harness/product"
)

// CheckHandler runs the named checks against the running product, or every
// registered check when no names are given.
func CheckHandler(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		names := cmd.Args().Slice()
		if len(names) == 0 {
			names = checks.Names()
		}

		factories := make([]checks.Factory, 0, len(names))
		for _, name := range names {
			factory, ok := checks.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown check %q, registered checks: %s", name, strings.Join(checks.Names(), ", "))
			}
			factories = append(factories, factory)
		}

		slog.DebugContext(ctx, "loading naughty strings fixture", slog.String("file", cfg.NaughtyStrings))
		naughty, err := fixtures.LoadNaughtyStrings(cfg.NaughtyStrings)
		if err != nil {
			return err
		}

		client, err := product.Connect(ctx, cfg.ProductDSN)
		if err != nil {
			return err
		}
		defer client.Close()

		env := &checks.Env{
			Product:        client,
			Cargo:          cargo.NewClient(cfg.CargoWorkspace),
			NaughtyStrings: naughty,
			Parallelism:    cfg.Parallelism,
		}

		progress := progressbar.Default(int64(len(factories)))

		var failed []string
		for _, factory := range factories {
			check := factory()

			slog.InfoContext(ctx, "running check", slog.String("check", check.Name()))
			if err := check.Run(ctx, env); err != nil {
				slog.ErrorContext(ctx, "check failed", slog.String("check", check.Name()), slog.Any("error", err))
				failed = append(failed, check.Name())
			}

			if err := progress.Add(1); err != nil {
				slog.WarnContext(ctx, "failed to update progress bar", slog.Any("error", err))
			}
		}

		if len(failed) > 0 {
			return fmt.Errorf("%d of %d checks failed: %s", len(failed), len(factories), strings.Join(failed, ", "))
		}
		return nil
	}
}
