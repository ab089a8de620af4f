// Package config loads, normalizes, and validates somscan configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SOMSCAN_ANALYZE_URL. The Config type centralizes every knob the CLI needs,
// allowing service endpoints, polling cadence, and state directories to be
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
