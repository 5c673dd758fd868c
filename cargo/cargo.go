package cargo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/Masterminds/semver/v3"

	"github.com/meridiandb/harness/version"
)

// DaemonPackage is the crate holding the product daemon. Its version is the
// version of the current source tree.
const DaemonPackage = "meridiand"

var ErrPackageNotFound = errors.New("package not found in cargo metadata")

type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Metadata struct {
	Packages []Package `json:"packages"`
}

// runner executes an external command and returns its stdout.
type runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

type client struct {
	workspaceDir string
	run          runner
}

type Client interface {
	Metadata(ctx context.Context) (Metadata, error)
	PackageVersion(ctx context.Context, name string) (version.Version, error)
	DaemonVersion(ctx context.Context) (version.Version, error)
}

// NewClient returns a metadata client for the cargo workspace rooted at
// workspaceDir.
func NewClient(workspaceDir string) Client {
	return &client{
		workspaceDir: workspaceDir,
		run:          runCommand,
	}
}

func runCommand(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, err
	}

	return output, nil
}

func (c *client) Metadata(ctx context.Context) (Metadata, error) {
	output, err := c.run(ctx, c.workspaceDir, "cargo", "metadata", "--no-deps", "--format-version=1")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to run cargo metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(output, &metadata); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode cargo metadata: %w", err)
	}

	return metadata, nil
}

// PackageVersion returns the version of the named package. Cargo versions
// are bare semantic versions, without the product's "v" prefix.
func (c *client) PackageVersion(ctx context.Context, name string) (version.Version, error) {
	metadata, err := c.Metadata(ctx)
	if err != nil {
		return version.Version{}, err
	}

	for _, pkg := range metadata.Packages {
		if pkg.Name != name {
			continue
		}

		sv, err := semver.StrictNewVersion(pkg.Version)
		if err != nil {
			return version.Version{}, fmt.Errorf("failed to parse version %q of package %s: %w", pkg.Version, name, err)
		}

		return version.FromSemver(sv), nil
	}

	return version.Version{}, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
}

// DaemonVersion returns the version of the current source tree, taken from
// the daemon crate.
func (c *client) DaemonVersion(ctx context.Context) (version.Version, error) {
	return c.PackageVersion(ctx, DaemonPackage)
}
