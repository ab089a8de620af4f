// Package analysis defines the data model shared by the submission,
// polling, and estimation flows.
//
// A Request captures one transit-signal candidate keyed by its object
// identifier. ServerStatus classifies a raw poll response into pending,
// complete, or unrecognized, applying the terminal-field rule: a response
// is complete exactly when it carries a finite numeric percent value,
// regardless of any status string it also carries. Result is the outcome
// presented to the user, labeled with the source that produced it so a
// local estimate can never masquerade as a service verdict.
package analysis
