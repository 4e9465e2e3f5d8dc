package testsupport

import (
	"path/filepath"
	"testing"

	"tubemap/internal/config"
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
	cfg.YouTube.APIKey = "test"
	cfg.Kakao.APIKey = "test"
	cfg.Pipeline.DelaySeconds = 0

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithYouTubeBaseURL points the metadata client at a test server.
func WithYouTubeBaseURL(url string) ConfigOption {
	return func(c *config.Config) {
		c.YouTube.BaseURL = url
	}
}

// WithKakaoBaseURL points the place-search client at a test server.
func WithKakaoBaseURL(url string) ConfigOption {
	return func(c *config.Config) {
		c.Kakao.BaseURL = url
	}
}

// WithFallbackFile overrides the fallback file location.
func WithFallbackFile(path string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.FallbackFile = path
	}
}
