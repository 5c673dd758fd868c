package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds the harness settings. Every field has a default so the
// harness works out of the box inside a product checkout.
type Config struct {
	// ProductDSN is the Postgres-wire address of the product under test.
	ProductDSN string `yaml:"product_dsn"`
	// ProductRepo is the product git checkout, used for release tags and
	// the workspace commit hash.
	ProductRepo string `yaml:"product_repo"`
	// CargoWorkspace is the directory holding the product's Cargo.toml.
	CargoWorkspace string `yaml:"cargo_workspace"`
	// NaughtyStrings is the path of the naughty strings fixture.
	NaughtyStrings string `yaml:"naughty_strings"`
	// Parallelism bounds concurrent queries in checks.
	Parallelism int `yaml:"parallelism"`
}

func Default() *Config {
	return &Config{
		ProductDSN:     "postgres://meridian@localhost:6420/meridian?sslmode=disable",
		ProductRepo:    ".",
		CargoWorkspace: ".",
		NaughtyStrings: "data/blns.json",
		Parallelism:    8,
	}
}

// Load reads the config file at path over the defaults. A missing file is
// not an error: the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	if cfg.Parallelism <= 0 {
		return nil, fmt.Errorf("invalid config: parallelism must be positive, got %d", cfg.Parallelism)
	}

	return cfg, nil
}
