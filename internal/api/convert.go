package api

import (
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
)

// FromEntry converts a history entry into its transport representation.
func FromEntry(entry *history.Entry) Submission {
	if entry == nil {
		return Submission{}
	}
	view := Submission{
		ID:           entry.ID,
		ObjectID:     entry.ObjectID,
		Status:       string(entry.Status),
		Source:       string(entry.Source),
		Summary:      entry.Summary,
		ErrorMessage: entry.ErrorMessage,
	}
	if !entry.CreatedAt.IsZero() {
		view.CreatedAt = entry.CreatedAt.Format(dateTimeFormat)
	}
	if !entry.UpdatedAt.IsZero() {
		view.UpdatedAt = entry.UpdatedAt.Format(dateTimeFormat)
	}
	if entry.CompletedAt != nil {
		view.CompletedAt = entry.CompletedAt.Format(dateTimeFormat)
	}
	if entry.Status == history.StatusCompleted || entry.Status == history.StatusEstimated {
		percent := entry.Percent
		probability := entry.Probability
		view.Percent = &percent
		view.Probability = &probability
	}
	if result, ok := entry.Result(); ok {
		view.Result = FromResult(result)
	}
	return view
}

// FromEntries converts a slice of history entries, skipping nils.
func FromEntries(entries []*history.Entry) []Submission {
	views := make([]Submission, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		views = append(views, FromEntry(entry))
	}
	return views
}

// FromResult converts a domain result into its transport shape.
func FromResult(result *analysis.Result) *ResultPayload {
	if result == nil {
		return nil
	}
	return &ResultPayload{
		ObjectID:     result.ObjectID,
		Probability:  result.Probability,
		Percent:      result.Percent,
		Summary:      result.Summary,
		DataComments: append([]string(nil), result.DataComments...),
		Timestamp:    result.Timestamp,
		Source:       string(result.Source),
	}
}
