// Package insight renders backend-generated advisories: periodic reports,
// cross-validation findings, and risk alerts. Insights are created
// server-side and fetched read-only; the only client-side mutation is the
// one-way read acknowledgement.
package insight

import "time"

// Type classifies an insight.
type Type string

const (
	TypeScheduledReport Type = "SCHEDULED_REPORT"
	TypeCrossValidation Type = "CROSS_VALIDATION"
	TypeRiskAlert       Type = "RISK_ALERT"
)

// Severity orders insights by urgency.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Details is the sparse bag of optional body sections.
type Details struct {
	ProgressSummary         string   `json:"progressSummary,omitempty"`
	GitHubHighlights        []string `json:"githubHighlights,omitempty"`
	MCPHighlights           []string `json:"mcpHighlights,omitempty"`
	CrossValidationFindings []string `json:"crossValidationFindings,omitempty"`
	Risks                   []string `json:"risks,omitempty"`
	Recommendations         []string `json:"recommendations,omitempty"`
}

// Insight is one advisory record. IsRead moves false→true exactly once,
// via the read acknowledgement, and never back.
type Insight struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Details   Details   `json:"details"`
	Severity  Severity  `json:"severity"`
	Score     *float64  `json:"score,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Section is one non-empty bullet list of the expanded body.
type Section struct {
	Label string
	Items []string
}

// Sections returns the non-empty detail sections in their fixed priority
// order. Absent or empty lists are omitted entirely.
func Sections(d Details) []Section {
	out := make([]Section, 0, 5)
	add := func(label string, items []string) {
		if len(items) > 0 {
			out = append(out, Section{Label: label, Items: items})
		}
	}
	add("Recommendations", d.Recommendations)
	add("Risks", d.Risks)
	add("GitHub Highlights", d.GitHubHighlights)
	add("MCP Highlights", d.MCPHighlights)
	add("Cross-Validation", d.CrossValidationFindings)
	return out
}
