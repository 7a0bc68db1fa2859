// Package query implements read-only search and filtering over record
// snapshots. Nothing here mutates its input; results keep input order.
package query

import "strings"

// Searchable exposes the text fields keyword search looks at.
type Searchable interface {
	SearchText() []string
}

// Search returns every record with at least one field containing keyword,
// ignoring case. An empty keyword matches everything. No match is an empty
// result, never an error.
func Search[R Searchable](records []R, keyword string) []R {
	needle := strings.ToLower(keyword)
	return Filter(records, func(r R) bool {
		for _, field := range r.SearchText() {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	})
}

// Filter returns the records keep accepts.
func Filter[R any](records []R, keep func(R) bool) []R {
	out := make([]R, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
