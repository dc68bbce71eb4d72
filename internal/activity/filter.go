package activity

import "strings"

// Filter narrows an item list by type and free-text query. The zero value
// matches everything. Both controls always apply to the full list, so
// re-running after either one changes reflects the other as well.
type Filter struct {
	// Type selects a single event type, or TypeAll (and "") for no
	// restriction.
	Type Type
	// Query is matched case-insensitively as a substring of the summary,
	// the feature area, and each changed file path. Whitespace-only
	// queries match everything.
	Query string
}

// IsZero reports whether the filter has no active controls.
func (f Filter) IsZero() bool {
	return (f.Type == "" || f.Type == TypeAll) && strings.TrimSpace(f.Query) == ""
}

// Apply returns the subsequence of items matching the filter, in their
// original relative order. The input is never mutated; the result is
// always a fresh slice.
func (f Filter) Apply(items []Item) []Item {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !f.matchesType(it) {
			continue
		}
		if q != "" && !matchesQuery(it, q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (f Filter) matchesType(it Item) bool {
	if f.Type == "" || f.Type == TypeAll {
		return true
	}
	return it.Type == f.Type
}

func matchesQuery(it Item, q string) bool {
	if strings.Contains(strings.ToLower(it.Summary), q) {
		return true
	}
	if it.FeatureArea != "" && strings.Contains(strings.ToLower(it.FeatureArea), q) {
		return true
	}
	for _, path := range it.FilesChanged {
		if strings.Contains(strings.ToLower(path), q) {
			return true
		}
	}
	return false
}
