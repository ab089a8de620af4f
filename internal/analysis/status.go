package analysis

import (
	"encoding/json"
	"math"
	"strings"
)

// State classifies one polled server response.
type State string

const (
	// StatePending marks a response that explicitly reports the job as queued.
	StatePending State = "pending"
	// StateComplete marks a response carrying a finite numeric terminal field.
	StateComplete State = "complete"
	// StateUnrecognized marks a response with neither a pending marker nor a
	// usable terminal field.
	StateUnrecognized State = "unrecognized"
)

// terminalFieldKeys lists the accepted spellings of the terminal percent
// field. Some deployments transliterate it.
var terminalFieldKeys = []string{"percent", "procent"}

// ServerStatus is the decoded shape of one poll response.
type ServerStatus struct {
	State     State
	ObjectID  string
	Percent   float64
	Timestamp string
	Raw       json.RawMessage
}

// Complete reports whether the status carries the terminal field.
func (s ServerStatus) Complete() bool {
	return s.State == StateComplete
}

// DecodeStatus classifies a raw JSON poll response. The terminal-field rule
// wins over any explicit status string: a finite numeric percent value makes
// the response complete, an explicit "pending" status makes it pending, and
// anything else is unrecognized. Classification never fails; malformed
// payloads simply come back unrecognized with the raw bytes attached.
func DecodeStatus(raw json.RawMessage) ServerStatus {
	status := ServerStatus{State: StateUnrecognized, Raw: raw}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return status
	}

	if value, ok := fields["object_id"]; ok {
		var objectID string
		if err := json.Unmarshal(value, &objectID); err == nil {
			status.ObjectID = strings.TrimSpace(objectID)
		}
	}

	for _, key := range terminalFieldKeys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		var percent float64
		if err := json.Unmarshal(value, &percent); err != nil {
			continue
		}
		if math.IsNaN(percent) || math.IsInf(percent, 0) {
			continue
		}
		status.State = StateComplete
		status.Percent = percent
		if value, ok := fields["timestamp"]; ok {
			var timestamp string
			if err := json.Unmarshal(value, &timestamp); err == nil {
				status.Timestamp = strings.TrimSpace(timestamp)
			}
		}
		return status
	}

	if value, ok := fields["status"]; ok {
		var marker string
		if err := json.Unmarshal(value, &marker); err == nil {
			if strings.EqualFold(strings.TrimSpace(marker), "pending") {
				status.State = StatePending
			}
		}
	}
	return status
}
