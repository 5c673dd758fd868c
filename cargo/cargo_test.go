package cargo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const fakeMetadata = `{
	"packages": [
		{"name": "meridian-sql", "version": "0.0.0", "id": "meridian-sql 0.0.0"},
		{"name": "meridiand", "version": "0.45.0-dev", "id": "meridiand 0.45.0-dev"}
	],
	"workspace_members": ["meridiand 0.45.0-dev"]
}`

func fakeRunner(output []byte, err error) runner {
	return func(_ context.Context, _, _ string, _ ...string) ([]byte, error) {
		return output, err
	}
}

func TestMetadata(t *testing.T) {
	c := &client{workspaceDir: ".", run: fakeRunner([]byte(fakeMetadata), nil)}

	metadata, err := c.Metadata(context.Background())
	require.NoError(t, err)
	require.Len(t, metadata.Packages, 2)
	require.Equal(t, "meridiand", metadata.Packages[1].Name)
	require.Equal(t, "0.45.0-dev", metadata.Packages[1].Version)
}

func TestMetadataCommandFailure(t *testing.T) {
	commandErr := errors.New("exit status 101: no Cargo.toml found")
	c := &client{workspaceDir: ".", run: fakeRunner(nil, commandErr)}

	_, err := c.Metadata(context.Background())
	require.ErrorIs(t, err, commandErr)
}

func TestMetadataInvalidJSON(t *testing.T) {
	c := &client{workspaceDir: ".", run: fakeRunner([]byte("not json"), nil)}

	_, err := c.Metadata(context.Background())
	require.ErrorContains(t, err, "failed to decode cargo metadata")
}

func TestDaemonVersion(t *testing.T) {
	c := &client{workspaceDir: ".", run: fakeRunner([]byte(fakeMetadata), nil)}

	v, err := c.DaemonVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, "v0.45.0-dev", v.String())
}

func TestPackageVersionNotFound(t *testing.T) {
	c := &client{workspaceDir: ".", run: fakeRunner([]byte(fakeMetadata), nil)}

	_, err := c.PackageVersion(context.Background(), "meridian-compute")
	require.ErrorIs(t, err, ErrPackageNotFound)
}

func TestPackageVersionInvalid(t *testing.T) {
	c := &client{workspaceDir: ".", run: fakeRunner([]byte(`{"packages": [{"name": "meridiand", "version": "latest"}]}`), nil)}

	_, err := c.PackageVersion(context.Background(), "meridiand")
	require.ErrorContains(t, err, "failed to parse version")
}
