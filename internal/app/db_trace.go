package app

import "strings"

// tracedQueryLimit caps the query text attached to DB spans. The import
// run's full-row UPDATE is the longest statement this service issues and
// fits well under it; anything longer is truncated with a marker.
const tracedQueryLimit = 512

// formatDBQueryForTrace collapses whitespace runs so multi-line builder
// output reads as one line in the span attribute.
func formatDBQueryForTrace(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}

	normalized := strings.Join(fields, " ")
	if len(normalized) <= tracedQueryLimit {
		return normalized
	}

	return normalized[:tracedQueryLimit] + "..."
}
