// Package poller drives repeated status fetches against the analysis service
// until the job reports a terminal value, the deadline passes, or the caller
// cancels. Fetch failures within a run are reported through a callback and
// never stop the loop on their own.
package poller
