package cmd

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/meridiandb/harness/config"
	"github.com/meridiandb/harness/product"
)

// WaitHandler blocks until the product at the configured DSN answers the
// version query.
func WaitHandler(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		client, err := product.Connect(ctx, cfg.ProductDSN)
		if err != nil {
			return err
		}
		defer client.Close()

		slog.InfoContext(ctx, "waiting for product", slog.String("dsn", cfg.ProductDSN))
		if err := client.WaitReady(ctx); err != nil {
			return err
		}

		v, err := client.Version(ctx)
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "product is ready", slog.String("version", v.String()))
		return nil
	}
}
