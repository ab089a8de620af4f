// Package services defines shared utilities consumed by the analysis
// transports and the poll workflow.
//
// Key responsibilities:
//   - Context helpers that stamp object identifiers, session identifiers, and
//     operation names for logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent history statuses (timed out vs canceled vs failed).
//   - Endpoint inspection so commands can short-circuit cleanly when a config
//     still carries sample placeholder URLs.
//
// Use these helpers when wiring new request logic so operational behaviour
// (error handling, observability) stays uniform across the client.
package services
