// Package history persists candidate submissions in SQLite and exposes
// helpers for driving their lifecycle.
//
// The Store manages database connections, schema initialization, stats
// queries, and the status transitions a submission moves through: recorded on
// submit, then completed, estimated, timed out, canceled, or failed. Entries
// capture the submitted parameters and the final result as JSON so past
// analyses can be replayed or re-polled without retyping the candidate.
//
// The database lives in the configured state directory. Schema changes bump
// the version in schema.go; users clear the database to adopt the new schema.
package history
