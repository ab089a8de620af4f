package history

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
)

// Status represents the lifecycle of a submission entry.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusCompleted Status = "completed"
	StatusEstimated Status = "estimated"
	StatusTimedOut  Status = "timed_out"
	StatusCanceled  Status = "canceled"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusSubmitted,
	StatusCompleted,
	StatusEstimated,
	StatusTimedOut,
	StatusCanceled,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Entry represents a submission persisted in SQLite.
type Entry struct {
	ID           string
	ObjectID     string
	Status       Status
	Source       analysis.Source
	Percent      float64
	Probability  float64
	Summary      string
	ErrorMessage string
	RequestJSON  string
	ResultJSON   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether the entry reached a final state.
func (e Entry) IsTerminal() bool {
	return e.Status != StatusSubmitted
}

// Request decodes the stored submission parameters. It returns false when the
// entry carries no request payload or the payload cannot be decoded.
func (e Entry) Request() (analysis.Request, bool) {
	if strings.TrimSpace(e.RequestJSON) == "" {
		return analysis.Request{}, false
	}
	req, err := analysis.DecodeRequest([]byte(e.RequestJSON))
	if err != nil {
		return analysis.Request{}, false
	}
	return req, true
}

// Result decodes the stored verdict payload. It returns false when the entry
// has none or the payload cannot be decoded.
func (e Entry) Result() (*analysis.Result, bool) {
	if strings.TrimSpace(e.ResultJSON) == "" {
		return nil, false
	}
	var result analysis.Result
	if err := json.Unmarshal([]byte(e.ResultJSON), &result); err != nil {
		return nil, false
	}
	return &result, true
}
