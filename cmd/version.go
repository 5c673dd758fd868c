package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/meridiandb/harness/cargo"
	"github.com/meridiandb/harness/config"
	"github.com/meridiandb/harness/releases"
)

// VersionHandler prints the version of the current source tree, rendered the
// way the product itself renders dev builds: "v0.45.0-dev (f01773cb1)".
func VersionHandler(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		slog.DebugContext(ctx, "reading cargo metadata", slog.String("workspace", cfg.CargoWorkspace))
		built, err := cargo.NewClient(cfg.CargoWorkspace).DaemonVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve built version: %w", err)
		}

		hash, err := releases.HeadHash(cfg.ProductRepo)
		if err != nil {
			slog.WarnContext(ctx, "failed to resolve workspace commit", slog.String("repository", cfg.ProductRepo), slog.Any("error", err))
			fmt.Fprintln(cmd.Writer, built)
			return nil
		}

		fmt.Fprintf(cmd.Writer, "%s (%s)\n", built, hash)
		return nil
	}
}
