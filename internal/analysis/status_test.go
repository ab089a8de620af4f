package analysis_test

import (
	"encoding/json"
	"testing"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
)

func TestDecodeStatusPending(t *testing.T) {
	status := analysis.DecodeStatus(json.RawMessage(`{"status":"pending"}`))
	if status.State != analysis.StatePending {
		t.Fatalf("expected pending state, got %s", status.State)
	}
	if status.Complete() {
		t.Fatal("pending status must not report complete")
	}
}

func TestDecodeStatusComplete(t *testing.T) {
	raw := json.RawMessage(`{"object_id":"TOI-700","percent":87.2,"timestamp":"2024-01-01T00:00:00Z"}`)
	status := analysis.DecodeStatus(raw)
	if status.State != analysis.StateComplete {
		t.Fatalf("expected complete state, got %s", status.State)
	}
	if status.Percent != 87.2 {
		t.Fatalf("expected percent 87.2, got %v", status.Percent)
	}
	if status.ObjectID != "TOI-700" {
		t.Fatalf("expected object id TOI-700, got %q", status.ObjectID)
	}
	if status.Timestamp != "2024-01-01T00:00:00Z" {
		t.Fatalf("unexpected timestamp %q", status.Timestamp)
	}
}

func TestDecodeStatusTransliteratedTerminalField(t *testing.T) {
	status := analysis.DecodeStatus(json.RawMessage(`{"procent":42}`))
	if status.State != analysis.StateComplete {
		t.Fatalf("expected transliterated field to complete, got %s", status.State)
	}
	if status.Percent != 42 {
		t.Fatalf("expected percent 42, got %v", status.Percent)
	}
}

func TestDecodeStatusTerminalFieldWinsOverStatusString(t *testing.T) {
	status := analysis.DecodeStatus(json.RawMessage(`{"status":"pending","percent":100}`))
	if status.State != analysis.StateComplete {
		t.Fatalf("terminal field must win over status string, got %s", status.State)
	}
}

func TestDecodeStatusNonNumericTerminalFieldIsNotComplete(t *testing.T) {
	status := analysis.DecodeStatus(json.RawMessage(`{"percent":"soon"}`))
	if status.State != analysis.StateUnrecognized {
		t.Fatalf("expected unrecognized state, got %s", status.State)
	}
}

func TestDecodeStatusUnrecognizedShapes(t *testing.T) {
	cases := map[string]string{
		"empty object":   `{}`,
		"other status":   `{"status":"running"}`,
		"array payload":  `[1,2,3]`,
		"scalar payload": `42`,
		"broken json":    `{"status":`,
	}
	for name, raw := range cases {
		status := analysis.DecodeStatus(json.RawMessage(raw))
		if status.State != analysis.StateUnrecognized {
			t.Fatalf("%s: expected unrecognized, got %s", name, status.State)
		}
	}
}

func TestDecodeStatusKeepsRawPayload(t *testing.T) {
	raw := json.RawMessage(`{"percent":12.5}`)
	status := analysis.DecodeStatus(raw)
	if string(status.Raw) != string(raw) {
		t.Fatalf("expected raw payload to be preserved, got %s", status.Raw)
	}
}
