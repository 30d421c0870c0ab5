package cache

import (
	"strings"
	"time"
)

// DefaultReferenceTTL bounds staleness of cached reference rows. Reference
// data is effective-dated and changes rarely, so minutes is plenty.
const DefaultReferenceTTL = 10 * time.Minute

// Key builds a cache key from code-like parts plus the lookup day, so an
// effective-dated row is never served for the wrong date.
func Key(at time.Time, parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		values = append(values, strings.ToLower(trimmed))
	}
	values = append(values, at.UTC().Format("2006-01-02"))
	return strings.Join(values, "|")
}
