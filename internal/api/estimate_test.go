package api

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/testsupport"
)

func TestEstimateLocalRecordsLabeledVerdict(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	res, err := EstimateLocal(context.Background(), EstimateRequest{
		Config:    cfg,
		Store:     store,
		Candidate: testsupport.Candidate("TOI-700"),
	})
	if err != nil {
		t.Fatalf("EstimateLocal failed: %v", err)
	}

	if res.Result == nil || res.Result.Source != analysis.SourceEstimate {
		t.Fatalf("expected an estimate verdict, got %+v", res.Result)
	}
	if !strings.Contains(res.Result.Summary, "Local estimate") {
		t.Fatalf("summary must label the estimate, got %q", res.Result.Summary)
	}
	if res.Result.Probability != 0.744 {
		t.Fatalf("unexpected probability: %v", res.Result.Probability)
	}
	if res.Entry == nil || res.Entry.Status != history.StatusEstimated {
		t.Fatalf("expected an estimated entry, got %+v", res.Entry)
	}
	if res.Entry.Probability != 0.744 {
		t.Fatalf("entry probability mismatch: %v", res.Entry.Probability)
	}
}

func TestEstimateLocalRejectsInvalidCandidate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := EstimateLocal(context.Background(), EstimateRequest{
		Config:    cfg,
		Store:     store,
		Candidate: analysis.Request{},
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
