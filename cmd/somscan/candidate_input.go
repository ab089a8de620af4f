package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/config"
)

// candidateFlags collects a transit candidate from the command line. The
// numeric fields mirror analysis.Request one to one.
type candidateFlags struct {
	file      string
	candidate analysis.Request
}

func registerCandidateFlags(cmd *cobra.Command, flags *candidateFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&flags.file, "file", "f", "", "TOML file describing the candidate")
	fs.StringVar(&flags.candidate.ObjectID, "object-id", "", "Candidate object identifier (for example TOI-700)")
	fs.Float64Var(&flags.candidate.SNR, "snr", 0, "Signal-to-noise ratio")
	fs.Float64Var(&flags.candidate.TransitDepth, "transit-depth", 0, "Transit depth in ppm")
	fs.Float64Var(&flags.candidate.OrbitalPeriod, "orbital-period", 0, "Orbital period in days")
	fs.Float64Var(&flags.candidate.TransitDuration, "transit-duration", 0, "Transit duration in hours")
	fs.Float64Var(&flags.candidate.PlanetRadius, "planet-radius", 0, "Planetary radius in Earth radii")
	fs.Float64Var(&flags.candidate.EquilibriumTemp, "equilibrium-temp", 0, "Equilibrium temperature in K")
	fs.Float64Var(&flags.candidate.StellarMass, "stellar-mass", 0, "Stellar mass in solar masses")
	fs.Float64Var(&flags.candidate.StellarRadius, "stellar-radius", 0, "Stellar radius in solar radii")
	fs.Float64Var(&flags.candidate.StellarTemp, "stellar-temp", 0, "Stellar effective temperature in K")
	fs.Float64Var(&flags.candidate.StellarMagnitude, "stellar-magnitude", 0, "Apparent stellar magnitude")
	fs.Float64Var(&flags.candidate.ImpactParameter, "impact-parameter", 0, "Impact parameter")
	fs.Float64Var(&flags.candidate.SemiMajorAxis, "semi-major-axis", 0, "Semi-major axis in AU")
}

// resolveCandidate produces the candidate for one command invocation. With
// --file the TOML content is the base and explicitly set flags override
// individual fields; without it the flags stand alone.
func resolveCandidate(cmd *cobra.Command, flags *candidateFlags) (analysis.Request, error) {
	if strings.TrimSpace(flags.file) == "" {
		return flags.candidate, nil
	}

	path, err := config.ExpandPath(flags.file)
	if err != nil {
		return analysis.Request{}, fmt.Errorf("resolve candidate file path: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return analysis.Request{}, fmt.Errorf("read candidate file: %w", err)
	}

	var candidate analysis.Request
	if err := toml.Unmarshal(data, &candidate); err != nil {
		return analysis.Request{}, fmt.Errorf("parse candidate file %s: %w", path, err)
	}
	applyCandidateOverrides(cmd, &candidate, flags.candidate)
	return candidate, nil
}

func applyCandidateOverrides(cmd *cobra.Command, dst *analysis.Request, overrides analysis.Request) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("object-id", func() { dst.ObjectID = overrides.ObjectID })
	set("snr", func() { dst.SNR = overrides.SNR })
	set("transit-depth", func() { dst.TransitDepth = overrides.TransitDepth })
	set("orbital-period", func() { dst.OrbitalPeriod = overrides.OrbitalPeriod })
	set("transit-duration", func() { dst.TransitDuration = overrides.TransitDuration })
	set("planet-radius", func() { dst.PlanetRadius = overrides.PlanetRadius })
	set("equilibrium-temp", func() { dst.EquilibriumTemp = overrides.EquilibriumTemp })
	set("stellar-mass", func() { dst.StellarMass = overrides.StellarMass })
	set("stellar-radius", func() { dst.StellarRadius = overrides.StellarRadius })
	set("stellar-temp", func() { dst.StellarTemp = overrides.StellarTemp })
	set("stellar-magnitude", func() { dst.StellarMagnitude = overrides.StellarMagnitude })
	set("impact-parameter", func() { dst.ImpactParameter = overrides.ImpactParameter })
	set("semi-major-axis", func() { dst.SemiMajorAxis = overrides.SemiMajorAxis })
}
