// Package estimator computes a local fallback probability for a candidate
// when the analysis service never answers. The estimate is a fixed weighted
// combination of signal quality and transit depth, clearly labeled so it is
// never mistaken for a service verdict.
package estimator
