// Package types provides type definitions for structured data used throughout the placement-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SuggestionType classifies a suggestion
type SuggestionType string

// Suggestion types
const (
	SuggestionImprovement SuggestionType = "improvement"
	SuggestionWarning     SuggestionType = "warning"
	SuggestionTip         SuggestionType = "tip"
)

// Severity ranks how urgently a suggestion should be addressed
type Severity string

// Severities, lowest first
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Suggestion is a rule-driven piece of feedback consumed directly by the caller.
// ApplySuggestion, when set, is literal replacement text the caller may apply verbatim.
type Suggestion struct {
	Type            SuggestionType `json:"type"`
	Severity        Severity       `json:"severity"`
	Message         string         `json:"message"`
	Suggestion      string         `json:"suggestion"`
	Example         string         `json:"example,omitempty"`
	ApplySuggestion string         `json:"applySuggestion,omitempty"`
	Section         string         `json:"section,omitempty"`
	Field           string         `json:"field,omitempty"`
}
