// Package activity defines the logged-event data model the backend feed
// returns, plus the client-side filter over it. Items are immutable once
// fetched; the dashboard owns them for the lifetime of one window and
// discards them on the next fetch.
package activity

import "time"

// Type classifies a logged event. The set is closed; anything else coming
// off the wire is rendered but never matches a type filter.
type Type string

const (
	TypeUpdate     Type = "update"
	TypeCompletion Type = "completion"
	TypeSession    Type = "session"
	TypeBlocker    Type = "blocker"

	// TypeAll is the filter selector that matches every type. It never
	// appears on an Item.
	TypeAll Type = "all"
)

// FilterTypes lists the type selectors in display order.
var FilterTypes = []Type{TypeAll, TypeCompletion, TypeSession, TypeUpdate, TypeBlocker}

// Label returns the display label for a type selector.
func (t Type) Label() string {
	switch t {
	case TypeAll:
		return "All"
	case TypeCompletion:
		return "Completed"
	case TypeSession:
		return "Sessions"
	case TypeUpdate:
		return "Updates"
	case TypeBlocker:
		return "Blockers"
	default:
		return string(t)
	}
}

// Item is one logged event. ID is opaque and unique within a fetch.
// Severity is only meaningful for blockers.
type Item struct {
	ID           string    `json:"id"`
	Type         Type      `json:"type"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"createdAt"`
	FilesChanged []string  `json:"filesChanged,omitempty"`
	FeatureArea  string    `json:"featureArea,omitempty"`
	Severity     string    `json:"severity,omitempty"`
}

// Stats holds the server-derived aggregate counters for a window. The
// client only formats these; consistency with the accompanying item list
// is the backend's responsibility.
type Stats struct {
	TotalUpdates     int     `json:"totalUpdates"`
	Completions      int     `json:"completions"`
	Sessions         int     `json:"sessions"`
	Blockers         int     `json:"blockers"`
	MostActiveDay    *string `json:"mostActiveDay"`
	FeaturesWorkedOn int     `json:"featuresWorkedOn"`
}

// Feed is the activity-feed response for one window.
type Feed struct {
	Activities []Item `json:"activities"`
	Stats      Stats  `json:"stats"`
}
