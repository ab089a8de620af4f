package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Request describes one transit-signal candidate submitted for analysis.
// ObjectID is the identity key; the numeric fields describe the transit
// geometry and the host star. Requests are treated as values and never
// mutated after submission.
type Request struct {
	ObjectID         string  `json:"object_id" toml:"object_id"`
	SNR              float64 `json:"snr" toml:"snr"`
	TransitDepth     float64 `json:"transit_depth" toml:"transit_depth"`
	OrbitalPeriod    float64 `json:"orbital_period" toml:"orbital_period"`
	TransitDuration  float64 `json:"transit_duration" toml:"transit_duration"`
	PlanetRadius     float64 `json:"planet_radius" toml:"planet_radius"`
	EquilibriumTemp  float64 `json:"equilibrium_temp" toml:"equilibrium_temp"`
	StellarMass      float64 `json:"stellar_mass" toml:"stellar_mass"`
	StellarRadius    float64 `json:"stellar_radius" toml:"stellar_radius"`
	StellarTemp      float64 `json:"stellar_temp" toml:"stellar_temp"`
	StellarMagnitude float64 `json:"stellar_magnitude" toml:"stellar_magnitude"`
	ImpactParameter  float64 `json:"impact_parameter" toml:"impact_parameter"`
	SemiMajorAxis    float64 `json:"semi_major_axis" toml:"semi_major_axis"`
}

type numericField struct {
	key   string
	label string
	value float64
}

func (r Request) numericFields() []numericField {
	return []numericField{
		{"snr", "Signal-to-noise ratio", r.SNR},
		{"transit_depth", "Transit depth (ppm)", r.TransitDepth},
		{"orbital_period", "Orbital period (days)", r.OrbitalPeriod},
		{"transit_duration", "Transit duration (hours)", r.TransitDuration},
		{"planet_radius", "Planetary radius (Earth radii)", r.PlanetRadius},
		{"equilibrium_temp", "Equilibrium temperature (K)", r.EquilibriumTemp},
		{"stellar_mass", "Stellar mass (solar masses)", r.StellarMass},
		{"stellar_radius", "Stellar radius (solar radii)", r.StellarRadius},
		{"stellar_temp", "Stellar effective temperature (K)", r.StellarTemp},
		{"stellar_magnitude", "Stellar magnitude", r.StellarMagnitude},
		{"impact_parameter", "Impact parameter", r.ImpactParameter},
		{"semi_major_axis", "Semi-major axis (AU)", r.SemiMajorAxis},
	}
}

// DecodeRequest parses a stored or submitted JSON candidate payload.
func DecodeRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}

// Validate checks that the candidate carries an object identifier and that
// every numeric parameter is a finite number.
func (r Request) Validate() error {
	if strings.TrimSpace(r.ObjectID) == "" {
		return errors.New("object_id is required")
	}
	for _, field := range r.numericFields() {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
			return fmt.Errorf("%s must be a finite number", field.key)
		}
	}
	return nil
}

// Commentary builds the ordered human-readable echo of a candidate's
// parameters shown alongside a result.
func Commentary(r Request) []string {
	lines := make([]string, 0, 13)
	lines = append(lines, "Object: "+strings.TrimSpace(r.ObjectID))
	for _, field := range r.numericFields() {
		lines = append(lines, field.label+": "+formatParam(field.value))
	}
	return lines
}

func formatParam(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
