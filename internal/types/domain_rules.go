// Package types provides type definitions for structured data used throughout the placement-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Level identifies an experience-level rule scope inside a DomainRules bundle
type Level string

// Experience levels supported by every rule bundle
const (
	LevelEntry  Level = "entryLevel"
	LevelMid    Level = "midLevel"
	LevelSenior Level = "seniorLevel"
)

// Levels returns all experience levels in a stable order.
func Levels() []Level {
	return []Level{LevelEntry, LevelMid, LevelSenior}
}

// Valid reports whether l is a known experience level
func (l Level) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior:
		return true
	default:
		return false
	}
}

// Power word strengths
const (
	StrengthVeryHigh = "very-high"
	StrengthHigh     = "high"
	StrengthMedium   = "medium"
)

// Skill importance values
const (
	ImportanceCritical = "critical"
	ImportanceHigh     = "high"
	ImportanceMedium   = "medium"
	ImportanceLow      = "low"
)

// DomainRules is the canonical rule bundle for one career-track domain.
// Rule files in either historical shape are normalized into this structure.
type DomainRules struct {
	Domain           string           `json:"domain"`
	DisplayName      string           `json:"displayName,omitempty"`
	ExperienceLevels ExperienceLevels `json:"experienceLevels"`
}

// ExperienceLevels holds one rule scope per experience level
type ExperienceLevels struct {
	EntryLevel  *LevelRules `json:"entryLevel"`
	MidLevel    *LevelRules `json:"midLevel"`
	SeniorLevel *LevelRules `json:"seniorLevel"`
}

// ForLevel returns the rules for the given level, falling back to midLevel when the level is unknown or missing.
func (d *DomainRules) ForLevel(level Level) *LevelRules {
	var rules *LevelRules
	switch level {
	case LevelEntry:
		rules = d.ExperienceLevels.EntryLevel
	case LevelSenior:
		rules = d.ExperienceLevels.SeniorLevel
	default:
		rules = d.ExperienceLevels.MidLevel
	}
	if rules == nil {
		return d.ExperienceLevels.MidLevel
	}
	return rules
}

// LevelRules is the rule scope for one experience level
type LevelRules struct {
	Rules                 RuleGroups     `json:"rules"`
	OverallScoringWeights ScoringWeights `json:"overallScoringWeights"`
}

// RuleGroups contains every rule group of a level
type RuleGroups struct {
	RequiredSkills   SkillGroupRules      `json:"requiredSkills"`
	NiceToHaveSkills SkillGroupRules      `json:"niceToHaveSkills"`
	PowerWords       PowerWordRules       `json:"powerWords"`
	MetricsFramework MetricsFramework     `json:"metricsFramework"`
	ResumeStructure  ResumeStructureRules `json:"resumeStructure"`
	RedFlags         RedFlagRules         `json:"redFlags"`
	ATSOptimization  ATSOptimizationRules `json:"atsOptimization"`
}

// SkillGroupRules is a weighted list of skills
type SkillGroupRules struct {
	Category   string      `json:"category"`
	Importance float64     `json:"importance"`
	Skills     []SkillRule `json:"skills"`
}

// SkillRule describes a single skill and the aliases that count as a match
type SkillRule struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Importance  string   `json:"importance"`
	Weight      float64  `json:"weight"`
	Description string   `json:"description,omitempty"`
}

// Terms returns the lowercase name and aliases of the skill
func (s SkillRule) Terms() []string {
	terms := make([]string, 0, len(s.Aliases)+1)
	if s.Name != "" {
		terms = append(terms, strings.ToLower(strings.TrimSpace(s.Name)))
	}
	for _, alias := range s.Aliases {
		if alias != "" {
			terms = append(terms, strings.ToLower(strings.TrimSpace(alias)))
		}
	}
	return terms
}

// PowerWordRules lists strong action verbs and the weak verbs they replace
type PowerWordRules struct {
	Category   string      `json:"category"`
	Importance float64     `json:"importance"`
	Words      []PowerWord `json:"words"`
	WeakVerbs  []string    `json:"weakVerbs"`
	// TargetCount is the number of distinct power words that earns a full power-word score
	TargetCount int `json:"targetCount"`
}

// PowerWord is a strong action verb
type PowerWord struct {
	Word     string   `json:"word"`
	Strength string   `json:"strength"`
	Category string   `json:"category,omitempty"`
	Replaces []string `json:"replaces,omitempty"`
}

// Strong reports whether the word is rated high or very-high
func (p PowerWord) Strong() bool {
	return p.Strength == StrengthHigh || p.Strength == StrengthVeryHigh
}

// MetricsFramework defines how quantified impact is detected
type MetricsFramework struct {
	Category   string          `json:"category"`
	Importance float64         `json:"importance"`
	Units      []string        `json:"units"`
	Examples   []MetricExample `json:"examples"`
	// TargetCount is the number of metrics that earns a full metrics score
	TargetCount int `json:"targetCount"`
}

// MetricExample is an illustrative quantified bullet
type MetricExample struct {
	Example     string `json:"example"`
	Description string `json:"description,omitempty"`
}

// ResumeStructureRules describes the expected sections and summary length
type ResumeStructureRules struct {
	Category     string             `json:"category"`
	Importance   float64            `json:"importance"`
	Sections     []SectionGuideline `json:"sections"`
	Guidelines   []string           `json:"guidelines"`
	SummaryWords WordRange          `json:"summaryWords"`
}

// SectionGuideline documents one resume section
type SectionGuideline struct {
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	Guideline string `json:"guideline,omitempty"`
}

// WordRange is an inclusive word-count range
type WordRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// RedFlagRules lists domain specific red flags
type RedFlagRules struct {
	Category   string    `json:"category"`
	Importance float64   `json:"importance"`
	Flags      []RedFlag `json:"flags"`
}

// RedFlag is a negative pattern. Pattern is a case-insensitive regular expression matched against the resume corpus.
type RedFlag struct {
	ID          string  `json:"id"`
	Pattern     string  `json:"pattern"`
	Description string  `json:"description"`
	Suggestion  string  `json:"suggestion,omitempty"`
	Penalty     float64 `json:"penalty"`
}

// ATSOptimizationRules overrides the canned ATS rule texts and weights
type ATSOptimizationRules struct {
	Category   string    `json:"category"`
	Importance float64   `json:"importance"`
	Rules      []ATSRule `json:"rules"`
}

// ATSRule overrides description, suggestion or weight of a structural ATS check by ID
type ATSRule struct {
	ID          string  `json:"id"`
	Description string  `json:"description,omitempty"`
	Suggestion  string  `json:"suggestion,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
}

// ScoringWeights are the per-category weights of the legacy weighted score.
// A valid rule set sums to roughly 1.0.
type ScoringWeights struct {
	KeywordMatch     float64 `json:"keywordMatch"`
	FormatCompliance float64 `json:"formatCompliance"`
	MetricsPresence  float64 `json:"metricsPresence"`
	PowerWordUsage   float64 `json:"powerWordUsage"`
	SkillRelevance   float64 `json:"skillRelevance"`
}

// Sum returns the total of all weights
func (w ScoringWeights) Sum() float64 {
	return w.KeywordMatch + w.FormatCompliance + w.MetricsPresence + w.PowerWordUsage + w.SkillRelevance
}

// DefaultScoringWeights returns the weights used when a bundle omits them entirely
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		KeywordMatch:     0.30,
		FormatCompliance: 0.20,
		MetricsPresence:  0.20,
		PowerWordUsage:   0.15,
		SkillRelevance:   0.15,
	}
}
