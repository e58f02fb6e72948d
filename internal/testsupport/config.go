package testsupport

import (
	"path/filepath"
	"testing"

	"maldreth/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Server.Bind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithLayoutStyle overrides the diagram layout style on the test config.
func WithLayoutStyle(style string) ConfigOption {
	return func(c *config.Config) {
		c.Layout.Style = style
	}
}

// WithCSVPath sets the seed CSV path on the test config.
func WithCSVPath(path string) ConfigOption {
	return func(c *config.Config) {
		c.Seed.CSVPath = path
	}
}
