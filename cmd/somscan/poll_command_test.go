package main

import (
	"strings"
	"testing"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/testsupport"
)

func TestCLIPollRequiresRecordedSubmission(t *testing.T) {
	env := setupCLITestEnv(t)
	server := newAnalysisServer(t, `{"status":"pending"}`)
	env.cfg.Service.AnalyzeURL = server.URL
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, []string{"poll", "TOI-9999"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown object")
	}
	if !strings.Contains(err.Error(), "no submission found for TOI-9999") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCLIPollCompletesRecordedSubmission(t *testing.T) {
	env := setupCLITestEnv(t)
	server := newAnalysisServer(t, `{"object_id":"TOI-700","percent":64.5}`)
	env.cfg.Service.AnalyzeURL = server.URL
	writeTestConfig(t, env.configPath, env.cfg)

	store, err := history.Open(env.cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	testsupport.NewSubmission(t, store, testsupport.Candidate("TOI-700"))
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	out, _, err := runCLI(t, []string{"poll", "TOI-700"}, env.configPath)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	requireContains(t, out, "Verdict for TOI-700")
	requireContains(t, out, "64.5%")

	out, _, err = runCLI(t, []string{"history", "show", "TOI-700"}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "Completed")
}
