// Package api hosts the somscan workflows and their transport-friendly
// result types. The CLI calls these functions; nothing here prints or
// prompts.
//
// # Workflows
//
// Submit: validate a candidate, persist it, fire the advisory submission
// record, poll the analysis service, and store the verdict. A poll timeout
// can hand off to the local estimator when the caller asks for it.
//
// PollObject: resume polling for the most recent submission of an object.
//
// EstimateLocal: score a candidate with the local estimator only.
//
// ListSubmissions/DescribeSubmission/ClearSubmissions/SubmissionStats:
// read-side accessors over the history store.
//
// # Design Notes
//
// DTOs use camelCase JSON tags for machine consumers of the CLI's JSON
// output. Internal enums (history.Status, analysis.Source) are exposed as
// lowercase strings. A per-state-directory file lock keeps concurrent
// somscan invocations from polling over each other.
package api
