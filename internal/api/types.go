package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Submission describes a history entry in a transport-friendly format.
type Submission struct {
	ID           string         `json:"id"`
	ObjectID     string         `json:"objectId"`
	Status       string         `json:"status"`
	Source       string         `json:"source,omitempty"`
	Percent      *float64       `json:"percent,omitempty"`
	Probability  *float64       `json:"probability,omitempty"`
	Summary      string         `json:"summary,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	CreatedAt    string         `json:"createdAt,omitempty"`
	UpdatedAt    string         `json:"updatedAt,omitempty"`
	CompletedAt  string         `json:"completedAt,omitempty"`
	Result       *ResultPayload `json:"result,omitempty"`
}

// ResultPayload describes a final verdict, remote or locally estimated.
type ResultPayload struct {
	ObjectID     string   `json:"objectId"`
	Probability  float64  `json:"probability"`
	Percent      float64  `json:"percent"`
	Summary      string   `json:"summary"`
	DataComments []string `json:"dataComments,omitempty"`
	Timestamp    string   `json:"timestamp,omitempty"`
	Source       string   `json:"source"`
}

// SubmissionListResponse wraps a collection of submissions for JSON output.
type SubmissionListResponse struct {
	Submissions []Submission `json:"submissions"`
}

// SubmissionStatsResponse provides normalized status counts.
type SubmissionStatsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}
