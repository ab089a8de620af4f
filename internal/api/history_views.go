package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
)

// HistoryRequest filters the submission history read-side.
type HistoryRequest struct {
	Store    *history.Store
	Statuses []history.Status
	Limit    int
}

// ListSubmissions returns submissions newest first, optionally filtered by
// status and truncated to Limit.
func ListSubmissions(ctx context.Context, req HistoryRequest) ([]Submission, error) {
	if req.Store == nil {
		return nil, errors.New("history store is required")
	}
	entries, err := req.Store.List(ctx, req.Statuses...)
	if err != nil {
		return nil, err
	}
	if req.Limit > 0 && len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}
	return FromEntries(entries), nil
}

// DescribeSubmission returns the most recent submission for an object.
func DescribeSubmission(ctx context.Context, store *history.Store, objectID string) (Submission, error) {
	if store == nil {
		return Submission{}, errors.New("history store is required")
	}
	objectID = strings.TrimSpace(objectID)
	if objectID == "" {
		return Submission{}, services.Wrap(services.ErrValidation, "history", "", "object id is required", nil)
	}
	entry, err := store.LatestByObjectID(ctx, objectID)
	if err != nil {
		return Submission{}, err
	}
	if entry == nil {
		return Submission{}, services.Wrap(services.ErrNotFound, "history", "",
			fmt.Sprintf("no submission found for %s", objectID), nil)
	}
	return FromEntry(entry), nil
}

// ClearSubmissions removes all history entries and reports how many.
func ClearSubmissions(ctx context.Context, store *history.Store) (int64, error) {
	if store == nil {
		return 0, errors.New("history store is required")
	}
	return store.Clear(ctx)
}

// SubmissionStats aggregates entry counts per status.
func SubmissionStats(ctx context.Context, store *history.Store) (SubmissionStatsResponse, error) {
	if store == nil {
		return SubmissionStatsResponse{}, errors.New("history store is required")
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return SubmissionStatsResponse{}, err
	}
	response := SubmissionStatsResponse{Counts: make(map[string]int, len(stats))}
	for status, count := range stats {
		response.Counts[string(status)] = count
		response.Total += count
	}
	return response, nil
}
