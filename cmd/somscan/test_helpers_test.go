package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/config"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SOMSCAN_ANALYZE_URL", "")
	t.Setenv("SOMSCAN_LOG_URL", "")

	cfgVal := config.Default()
	cfgVal.Service.AnalyzeURL = "https://analysis.test/som"
	cfgVal.Service.LogURL = ""
	cfgVal.Poll.Interval = 1
	cfgVal.Poll.Timeout = 2
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Estimator.MaxDelayMS = 0
	cfg := &cfgVal

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[service]
analyze_url = %q
log_url = %q

[poll]
interval = %d
timeout = %d

[paths]
state_dir = %q
log_dir = %q

[estimator]
enabled = %t
max_delay_ms = %d
`,
		cfg.Service.AnalyzeURL,
		cfg.Service.LogURL,
		cfg.Poll.Interval,
		cfg.Poll.Timeout,
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
		cfg.Estimator.Enabled,
		cfg.Estimator.MaxDelayMS,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// newAnalysisServer serves the script transport contract: each request is
// answered with the next payload wrapped in the caller's callback, and the
// last payload repeats once the sequence is exhausted.
func newAnalysisServer(t *testing.T, payloads ...string) *httptest.Server {
	t.Helper()
	if len(payloads) == 0 {
		t.Fatal("newAnalysisServer requires at least one payload")
	}
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callback := r.URL.Query().Get("callback")
		if callback == "" {
			t.Errorf("missing callback parameter in %s", r.URL.RawQuery)
		}
		index := int(calls.Add(1)) - 1
		if index >= len(payloads) {
			index = len(payloads) - 1
		}
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		fmt.Fprintf(w, "/**/%s(%s);", callback, payloads[index])
	}))
	t.Cleanup(server.Close)
	return server
}

func writeCandidateFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "candidate.toml")
	content := `object_id = "TOI-700"
snr = 18.4
transit_depth = 5600.0
orbital_period = 37.42
transit_duration = 2.1
planet_radius = 1.07
equilibrium_temp = 268.0
stellar_mass = 0.42
stellar_radius = 0.41
stellar_temp = 3480.0
stellar_magnitude = 13.1
impact_parameter = 0.25
semi_major_axis = 0.163
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write candidate file: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
