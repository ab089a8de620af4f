package analysis

import (
	"fmt"
	"strings"
)

// Source identifies which component produced a Result.
type Source string

const (
	// SourceService marks a verdict returned by the remote analysis service.
	SourceService Source = "service"
	// SourceEstimate marks a locally computed fallback estimate.
	SourceEstimate Source = "estimate"
)

// Result is the outcome presented for one submission. It is constructed
// once per successful poll cycle (or estimator run) and never mutated; the
// next submission supersedes it wholesale.
type Result struct {
	ObjectID     string   `json:"object_id"`
	Probability  float64  `json:"probability"`
	Percent      float64  `json:"percent"`
	Summary      string   `json:"summary"`
	DataComments []string `json:"data_comments"`
	Timestamp    string   `json:"timestamp,omitempty"`
	Source       Source   `json:"source"`
}

// ProbabilityFromPercent converts a service percent into a probability
// clamped to [0, 1]. Out-of-range percents saturate rather than error so an
// over-enthusiastic deployment reporting 130 still reads as certainty.
func ProbabilityFromPercent(percent float64) float64 {
	probability := percent / 100
	if probability < 0 {
		return 0
	}
	if probability > 1 {
		return 1
	}
	return probability
}

// NewServiceResult derives the user-facing result from a completed server
// status, echoing the submitted candidate's parameters as data comments.
func NewServiceResult(req Request, status ServerStatus) *Result {
	objectID := strings.TrimSpace(status.ObjectID)
	if objectID == "" {
		objectID = strings.TrimSpace(req.ObjectID)
	}
	return &Result{
		ObjectID:     objectID,
		Probability:  ProbabilityFromPercent(status.Percent),
		Percent:      status.Percent,
		Summary:      fmt.Sprintf("Analysis service scored %s at %.1f%%", objectID, status.Percent),
		DataComments: Commentary(req),
		Timestamp:    status.Timestamp,
		Source:       SourceService,
	}
}
