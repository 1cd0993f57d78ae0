// Package testsupport holds shared helpers for package tests: temp-dir
// configs, store setup, and artifact seeding.
package testsupport

import (
	"path/filepath"
	"testing"

	"dashrec/internal/config"
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

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithTranslationKey sets the translation API key on the test config.
func WithTranslationKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Translation.APIKey = key
	}
}

// WithSolarCoreURL points the sync client at a test server.
func WithSolarCoreURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.SolarCore.URL = url
	}
}
