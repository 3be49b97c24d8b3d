// Package types provides type definitions for structured data used throughout the placement-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Evaluation categories
const (
	CategoryATS     = "ats"
	CategoryHR      = "hr"
	CategoryRedFlag = "red-flag"
	CategoryJD      = "jd"
)

// RuleEvaluation is the transient pass/fail outcome of one rule.
// Red-flag evaluations carry a negative weight (the penalty).
type RuleEvaluation struct {
	RuleID      string  `json:"ruleId"`
	Passed      bool    `json:"passed"`
	Description string  `json:"description"`
	Suggestion  string  `json:"suggestion,omitempty"`
	Weight      float64 `json:"weight"`
	Category    string  `json:"category"`
	Observed    float64 `json:"observed,omitempty"` // Measured value, e.g. an overlap ratio or a count
}

// FilterByCategory returns the evaluations belonging to the given category
func FilterByCategory(evaluations []RuleEvaluation, category string) []RuleEvaluation {
	var filtered []RuleEvaluation
	for _, e := range evaluations {
		if e.Category == category {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FindEvaluation returns the evaluation with the given rule ID, if present
func FindEvaluation(evaluations []RuleEvaluation, ruleID string) (RuleEvaluation, bool) {
	for _, e := range evaluations {
		if e.RuleID == ruleID {
			return e, true
		}
	}
	return RuleEvaluation{}, false
}
