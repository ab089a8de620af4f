package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Service.AnalyzeURL = "https://analysis.test/som"
	cfgVal.Service.LogURL = "https://analysis.test/log"
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Estimator.MaxDelayMS = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAnalyzeURL sets the analysis endpoint on the test config.
func WithAnalyzeURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Service.AnalyzeURL = url
	}
}

// WithLogURL sets the submission logging endpoint on the test config.
func WithLogURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Service.LogURL = url
	}
}

// WithEstimatorDisabled turns off the local fallback estimator.
func WithEstimatorDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Estimator.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
