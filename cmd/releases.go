package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/meridiandb/harness/config"
	"github.com/meridiandb/harness/releases"
)

// ReleasesHandler lists the released versions found in the product checkout,
// oldest first.
func ReleasesHandler(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		list, err := releases.FromRepository(cfg.ProductRepo)
		if err != nil {
			return fmt.Errorf("failed to list releases: %w", err)
		}

		for _, v := range list.All() {
			fmt.Fprintln(cmd.Writer, v)
		}
		return nil
	}
}
