// Package submitlog posts submitted candidates to an advisory logging
// endpoint. Delivery is best effort: failures are logged locally and never
// affect the analysis flow.
package submitlog
