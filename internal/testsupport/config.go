package testsupport

import (
	"path/filepath"
	"testing"

	"jobindex/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.OutputPath = filepath.Join(base, "emissions.jsonl")
	cfg.Scan.LockTimeout = 0

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithFailFast enables fail-fast scanning on the test config.
func WithFailFast() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scan.FailFast = true
	}
}
