package services

import "strings"

// placeholderMarkers are fragments that only appear in endpoint values copied
// verbatim from the sample configuration or from documentation templates.
var placeholderMarkers = []string{"PASTE", "YOUR_", "<", ">"}

// IsPlaceholderEndpoint reports whether the endpoint value is unset or still
// holds sample placeholder text. Callers short-circuit on these values before
// making any network request.
func IsPlaceholderEndpoint(endpoint string) bool {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return true
	}
	upper := strings.ToUpper(trimmed)
	for _, marker := range placeholderMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
