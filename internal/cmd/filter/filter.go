// Package filter narrows entry lists for display.
package filter

import (
	"github.com/agentstation/bookshelf/pkg/catalog"
)

// EntryFilter applies filters to entry lists
type EntryFilter struct {
	Status catalog.Status
	Limit  int
}

// Apply filters a slice of entries, keeping their order.
func (f *EntryFilter) Apply(entries []catalog.Entry) []catalog.Entry {
	if f == nil || f.isEmpty() {
		return entries
	}

	filtered := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			filtered = append(filtered, e)
		}
	}

	if f.Limit > 0 && len(filtered) > f.Limit {
		filtered = filtered[:f.Limit]
	}

	return filtered
}

func (f *EntryFilter) isEmpty() bool {
	return f.Status == "" && f.Limit == 0
}

func (f *EntryFilter) matches(e catalog.Entry) bool {
	return f.Status == "" || e.Status == f.Status
}
