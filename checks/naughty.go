package checks

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

func init() {
	Register("naughty-strings", func() Check { return naughtyStringsCheck{} })
}

// naughtyStringsCheck round-trips every fixture string through the product
// as a query parameter and verifies it comes back unmangled.
type naughtyStringsCheck struct{}

func (naughtyStringsCheck) Name() string { return "naughty-strings" }

func (naughtyStringsCheck) Run(ctx context.Context, env *Env) error {
	parallelism := env.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for _, naughty := range env.NaughtyStrings {
		g.Go(func() error {
			got, err := env.Product.QueryValue(gCtx, "SELECT $1::text", naughty)
			if err != nil {
				return fmt.Errorf("failed to round-trip %q: %w", naughty, err)
			}
			if got != naughty {
				return fmt.Errorf("round-trip of %q returned %q", naughty, got)
			}
			return nil
		})
	}

	return g.Wait()
}
