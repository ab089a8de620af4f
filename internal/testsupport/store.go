package testsupport

import (
	"context"
	"testing"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/config"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewSubmission records a candidate submission for tests using the provided store.
func NewSubmission(t testing.TB, store *history.Store, req analysis.Request) *history.Entry {
	t.Helper()

	entry, err := store.NewSubmission(context.Background(), req)
	if err != nil {
		t.Fatalf("store.NewSubmission: %v", err)
	}
	return entry
}

// Candidate returns a fully populated request for tests.
func Candidate(objectID string) analysis.Request {
	return analysis.Request{
		ObjectID:         objectID,
		SNR:              18.4,
		TransitDepth:     5600,
		OrbitalPeriod:    37.42,
		TransitDuration:  2.1,
		PlanetRadius:     1.07,
		EquilibriumTemp:  268,
		StellarMass:      0.42,
		StellarRadius:    0.41,
		StellarTemp:      3480,
		StellarMagnitude: 13.1,
		ImpactParameter:  0.25,
		SemiMajorAxis:    0.163,
	}
}
