package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCLISubmitRendersServiceVerdict(t *testing.T) {
	env := setupCLITestEnv(t)
	server := newAnalysisServer(t,
		`{"status":"pending"}`,
		`{"object_id":"TOI-700","percent":87.2,"timestamp":"2024-05-01T10:00:00Z"}`,
	)
	env.cfg.Service.AnalyzeURL = server.URL
	writeTestConfig(t, env.configPath, env.cfg)

	candidatePath := writeCandidateFile(t, env.baseDir)
	out, errOut, err := runCLI(t, []string{"submit", "--file", candidatePath}, env.configPath)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	requireContains(t, out, "Submitting TOI-700 for analysis")
	requireContains(t, out, "Verdict for TOI-700")
	requireContains(t, out, "87.2%")
	requireContains(t, out, "Analysis service")
	requireContains(t, out, "Signal-to-noise ratio: 18.4")
	requireContains(t, errOut, "still pending (attempt 1)")

	out, _, err = runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "TOI-700")
	requireContains(t, out, "Completed")
}

func TestCLISubmitEmitsJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	server := newAnalysisServer(t, `{"object_id":"TOI-700","percent":87.2}`)
	env.cfg.Service.AnalyzeURL = server.URL
	writeTestConfig(t, env.configPath, env.cfg)

	candidatePath := writeCandidateFile(t, env.baseDir)
	out, _, err := runCLI(t, []string{"submit", "--file", candidatePath, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("submit --json: %v", err)
	}

	var payload struct {
		ObjectID string `json:"objectId"`
		Status   string `json:"status"`
		Result   *struct {
			Probability float64 `json:"probability"`
			Percent     float64 `json:"percent"`
			Source      string  `json:"source"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if payload.ObjectID != "TOI-700" {
		t.Fatalf("expected objectId TOI-700, got %q", payload.ObjectID)
	}
	if payload.Status != "completed" {
		t.Fatalf("expected status completed, got %q", payload.Status)
	}
	if payload.Result == nil {
		t.Fatal("expected result payload")
	}
	if payload.Result.Probability != 0.872 {
		t.Fatalf("expected probability 0.872, got %v", payload.Result.Probability)
	}
	if payload.Result.Source != "service" {
		t.Fatalf("expected source service, got %q", payload.Result.Source)
	}
}

func TestCLISubmitFallsBackToEstimate(t *testing.T) {
	env := setupCLITestEnv(t)
	server := newAnalysisServer(t, `{"status":"pending"}`)
	env.cfg.Service.AnalyzeURL = server.URL
	env.cfg.Poll.Timeout = 1
	writeTestConfig(t, env.configPath, env.cfg)

	candidatePath := writeCandidateFile(t, env.baseDir)
	out, _, err := runCLI(t, []string{"submit", "--file", candidatePath}, env.configPath)
	if err != nil {
		t.Fatalf("submit with estimate fallback: %v", err)
	}
	requireContains(t, out, "showing a local estimate")
	requireContains(t, out, "Verdict for TOI-700")
	requireContains(t, out, "Local estimate")
	requireContains(t, out, "0.744")

	out, _, err = runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "Estimated")
}

func TestCLISubmitWithoutEstimateReportsTimeout(t *testing.T) {
	env := setupCLITestEnv(t)
	server := newAnalysisServer(t, `{"status":"pending"}`)
	env.cfg.Service.AnalyzeURL = server.URL
	env.cfg.Poll.Timeout = 1
	writeTestConfig(t, env.configPath, env.cfg)

	candidatePath := writeCandidateFile(t, env.baseDir)
	_, _, err := runCLI(t, []string{"submit", "--file", candidatePath, "--estimate=false"}, env.configPath)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "no analysis response for TOI-700") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "somscan poll TOI-700") {
		t.Fatalf("expected retry hint in error, got: %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "Timed Out")
}

func TestCLISubmitRejectsMissingObjectID(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"submit", "--snr", "18.4"}, env.configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "object_id is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}
