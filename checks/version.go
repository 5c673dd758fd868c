package checks

import (
	"context"
	"fmt"

	"github.com/meridiandb/harness/version"
)

func init() {
	Register("version", func() Check { return versionCheck{} })
}

// versionCheck verifies that the running product was built from the current
// source tree: its release-normalized version must equal the version in the
// cargo metadata.
type versionCheck struct{}

func (versionCheck) Name() string { return "version" }

func (versionCheck) Run(ctx context.Context, env *Env) error {
	running, err := env.Product.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to query running version: %w", err)
	}

	// Dev builds report "vX.Y.Z-dev"; normalize to the would-be release.
	release, err := version.ParseRelease(running.String())
	if err != nil {
		return fmt.Errorf("failed to normalize running version %s: %w", running, err)
	}

	built, err := env.Cargo.DaemonVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve built version: %w", err)
	}

	builtRelease, err := version.ParseRelease(built.String())
	if err != nil {
		return fmt.Errorf("failed to normalize built version %s: %w", built, err)
	}

	if !release.Equal(builtRelease) {
		return fmt.Errorf("running version %s does not match built version %s", running, built)
	}

	return nil
}
