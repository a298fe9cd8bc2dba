// Package metrics centralises metric names and tag shapes so emission stays
// consistent across the client. Every emitter tolerates a nil sink.
package metrics

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
