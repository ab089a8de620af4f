// Package somapp talks to the SOM analysis service. A Client fetches status
// snapshots for one candidate, preferring the script bridge and falling back
// to a plain GET when the bridge cannot deliver a callback.
package somapp
