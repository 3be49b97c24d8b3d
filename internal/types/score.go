// Package types provides type definitions for structured data used throughout the placement-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Legacy score category names
const (
	ScoreKeywordMatch     = "keywordMatch"
	ScoreFormatCompliance = "formatCompliance"
	ScoreMetricsPresence  = "metricsPresence"
	ScorePowerWordUsage   = "powerWordUsage"
	ScoreSkillRelevance   = "skillRelevance"
)

// ATSScore is the output of the five-category weighted scoring strategy
type ATSScore struct {
	OverallScore int              `json:"overallScore"`
	Scores       CategoryScores   `json:"scores"`
	Breakdown    []ScoreBreakdown `json:"breakdown"`
	Strategy     string           `json:"strategy"`
}

// CategoryScores holds the independent 0-100 category values
type CategoryScores struct {
	KeywordMatch     int `json:"keywordMatch"`
	FormatCompliance int `json:"formatCompliance"`
	MetricsPresence  int `json:"metricsPresence"`
	PowerWordUsage   int `json:"powerWordUsage"`
	SkillRelevance   int `json:"skillRelevance"`
}

// ScoreBreakdown is one weighted line of a composite score
type ScoreBreakdown struct {
	Category string  `json:"category"`
	Score    int     `json:"score"`
	Weight   float64 `json:"weight"`
}

// Verdict is the three-way classification of a composite score
type Verdict string

// Verdicts
const (
	VerdictPass       Verdict = "pass"
	VerdictBorderline Verdict = "borderline"
	VerdictFail       Verdict = "fail"
)

// VerdictResult is the output of the ats/hr/jd scoring strategy
type VerdictResult struct {
	ATSScore    float64          `json:"atsScore"`
	HRScore     float64          `json:"hrScore"`
	JDScore     *float64         `json:"jdScore,omitempty"` // Nil when no job context was supplied
	BaseScore   float64          `json:"baseScore"`
	Penalty     float64          `json:"penalty"`
	FinalScore  int              `json:"finalScore"`
	Verdict     Verdict          `json:"verdict"`
	Breakdown   []ScoreBreakdown `json:"breakdown"`
	Evaluations []RuleEvaluation `json:"evaluations"`
	Strategy    string           `json:"strategy"`
}
