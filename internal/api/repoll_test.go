package api

import (
	"context"
	"errors"
	"testing"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/testsupport"
)

func TestPollObjectRequiresExistingSubmission(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := PollObject(context.Background(), PollObjectRequest{
		Config:   cfg,
		Store:    store,
		ObjectID: "TOI-700",
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPollObjectCompletesLatestSubmission(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Poll.Interval = 1
	store := testsupport.MustOpenStore(t, cfg)
	seeded := testsupport.NewSubmission(t, store, testsupport.Candidate("TOI-700"))

	res, err := PollObject(context.Background(), PollObjectRequest{
		Config:   cfg,
		Store:    store,
		ObjectID: "TOI-700",
		Fetcher: fetcherFunc(func(ctx context.Context, objectID string) (analysis.ServerStatus, error) {
			return completeResponse(objectID), nil
		}),
	})
	if err != nil {
		t.Fatalf("PollObject failed: %v", err)
	}

	if res.Entry == nil || res.Entry.ID != seeded.ID {
		t.Fatalf("expected the seeded entry to be updated, got %+v", res.Entry)
	}
	if res.Entry.Status != history.StatusCompleted {
		t.Fatalf("unexpected status: %q", res.Entry.Status)
	}
	if res.Result == nil || res.Result.Percent != 87.2 {
		t.Fatalf("unexpected result: %+v", res.Result)
	}
	if len(res.Result.DataComments) == 0 || res.Result.DataComments[0] != "Object: TOI-700" {
		t.Fatalf("expected the stored request to be echoed, got %v", res.Result.DataComments)
	}
}

func TestPollObjectRecordsTimeout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Poll.Interval = 1
	cfg.Poll.Timeout = 1
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.NewSubmission(t, store, testsupport.Candidate("TOI-700"))

	res, err := PollObject(context.Background(), PollObjectRequest{
		Config:   cfg,
		Store:    store,
		ObjectID: "TOI-700",
		Fetcher: fetcherFunc(func(ctx context.Context, objectID string) (analysis.ServerStatus, error) {
			return pendingResponse(), nil
		}),
	})
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if res.Entry == nil || res.Entry.Status != history.StatusTimedOut {
		t.Fatalf("expected a timed out entry, got %+v", res.Entry)
	}
}
