// Package scoring combines rule outcomes into composite resume scores.
// Two independent strategies exist: LegacyWeightedScore (five weighted categories) and VerdictScore
// (ats/hr/jd category blend minus a capped red-flag penalty, mapped to a verdict). They are tuned separately.
package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/placement-prep/internal/evaluation"
	"github.com/jonathan/placement-prep/internal/parsing"
	"github.com/jonathan/placement-prep/internal/types"
)

// Strategy names reported on results
const (
	StrategyLegacy  = "legacy-weighted"
	StrategyVerdict = "verdict"
)

// Format compliance penalties for missing sections
const (
	penaltyName       = 10
	penaltyEmail      = 10
	penaltyPhone      = 5
	penaltySummary    = 10
	penaltyExperience = 20
	penaltyEducation  = 15
	penaltySkills     = 15
	penaltyProjects   = 10
)

// Fallback targets when a rule set carries none
const (
	defaultMetricsTarget   = 4
	defaultPowerWordTarget = 8
)

// LegacyWeightedScore scores a resume on five independent 0-100 categories and blends them with the
// level's overallScoringWeights.
type LegacyWeightedScore struct{}

// Score computes the ATSScore for a resume. Identical inputs always yield identical output.
func (LegacyWeightedScore) Score(resume *types.Resume, rules *types.LevelRules) types.ATSScore {
	if resume == nil {
		resume = &types.Resume{}
	}
	var weights types.ScoringWeights
	if rules != nil {
		weights = rules.OverallScoringWeights
	}

	keyword := CalculateKeywordMatch(resume, rules)
	format := CalculateFormatCompliance(resume)
	metrics := CalculateMetricsPresent(resume, rules)
	power := CalculatePowerWordUsage(resume, rules)
	relevance := CalculateSkillRelevance(resume, rules)

	breakdown := []types.ScoreBreakdown{
		{Category: types.ScoreKeywordMatch, Score: round(keyword), Weight: weights.KeywordMatch},
		{Category: types.ScoreFormatCompliance, Score: round(format), Weight: weights.FormatCompliance},
		{Category: types.ScoreMetricsPresence, Score: round(metrics), Weight: weights.MetricsPresence},
		{Category: types.ScorePowerWordUsage, Score: round(power), Weight: weights.PowerWordUsage},
		{Category: types.ScoreSkillRelevance, Score: round(relevance), Weight: weights.SkillRelevance},
	}

	return types.ATSScore{
		OverallScore: round(WeightedOverall(breakdown)),
		Scores: types.CategoryScores{
			KeywordMatch:     breakdown[0].Score,
			FormatCompliance: breakdown[1].Score,
			MetricsPresence:  breakdown[2].Score,
			PowerWordUsage:   breakdown[3].Score,
			SkillRelevance:   breakdown[4].Score,
		},
		Breakdown: breakdown,
		Strategy:  StrategyLegacy,
	}
}

// WeightedOverall returns sum(score*weight)/sum(weight) clamped to [0,100].
// A non-positive or NaN weight sum yields 0.
func WeightedOverall(breakdown []types.ScoreBreakdown) float64 {
	total, weightSum := 0.0, 0.0
	for _, b := range breakdown {
		total += float64(b.Score) * b.Weight
		weightSum += b.Weight
	}
	if weightSum <= 0 || math.IsNaN(weightSum) {
		return 0
	}
	return clamp(total/weightSum, 0, 100)
}

// CalculateKeywordMatch is the weighted share of required skills found anywhere in the resume corpus.
// No required skills scores 100.
func CalculateKeywordMatch(resume *types.Resume, rules *types.LevelRules) float64 {
	skills := requiredSkills(rules)
	if len(skills) == 0 {
		return 100
	}
	corpus := parsing.ExtractText(resume)

	matched, total := 0.0, 0.0
	for _, s := range skills {
		w := s.Weight
		if w <= 0 {
			w = 1
		}
		total += w
		if parsing.ContainsSkill(corpus, s) {
			matched += w
		}
	}
	return clamp(matched/total*100, 0, 100)
}

// CalculateFormatCompliance starts at 100 and subtracts a fixed penalty per missing section
func CalculateFormatCompliance(resume *types.Resume) float64 {
	if resume == nil {
		resume = &types.Resume{}
	}
	score := 100.0
	p := resume.PersonalInfo
	if blank(p.FullName) {
		score -= penaltyName
	}
	if blank(p.Email) {
		score -= penaltyEmail
	}
	if blank(p.Phone) {
		score -= penaltyPhone
	}
	if blank(p.Summary) {
		score -= penaltySummary
	}
	if len(resume.Experiences) == 0 {
		score -= penaltyExperience
	}
	if len(resume.Education) == 0 {
		score -= penaltyEducation
	}
	if len(parsing.SkillTokens(resume)) == 0 {
		score -= penaltySkills
	}
	if len(resume.Projects) == 0 {
		score -= penaltyProjects
	}
	return clamp(score, 0, 100)
}

// CalculateMetricsPresent scores detected metrics against the bundle's target count
func CalculateMetricsPresent(resume *types.Resume, rules *types.LevelRules) float64 {
	var units []string
	target := defaultMetricsTarget
	if rules != nil {
		units = rules.Rules.MetricsFramework.Units
		if rules.Rules.MetricsFramework.TargetCount > 0 {
			target = rules.Rules.MetricsFramework.TargetCount
		}
	}
	count := evaluation.NewMetricDetector(units).Count(parsing.ExtractText(resume))
	return math.Min(100, float64(count)/float64(target)*100)
}

// CalculatePowerWordUsage scores distinct power words used against the bundle's target count.
// An empty power word list scores 100.
func CalculatePowerWordUsage(resume *types.Resume, rules *types.LevelRules) float64 {
	if rules == nil || len(rules.Rules.PowerWords.Words) == 0 {
		return 100
	}
	target := rules.Rules.PowerWords.TargetCount
	if target <= 0 {
		target = defaultPowerWordTarget
	}
	found := evaluation.DistinctPowerWords(parsing.ExtractText(resume), rules.Rules.PowerWords.Words)
	return math.Min(100, float64(len(found))/float64(target)*100)
}

// CalculateSkillRelevance is the share of required skills present in the declared skills section.
// No required skills scores 100.
func CalculateSkillRelevance(resume *types.Resume, rules *types.LevelRules) float64 {
	skills := requiredSkills(rules)
	if len(skills) == 0 {
		return 100
	}
	declared := strings.ToLower(strings.Join(parsing.SkillTokens(resume), " "))

	matched := 0
	for _, s := range skills {
		if parsing.ContainsSkill(declared, s) {
			matched++
		}
	}
	return float64(matched) / float64(len(skills)) * 100
}

func requiredSkills(rules *types.LevelRules) []types.SkillRule {
	if rules == nil {
		return nil
	}
	return rules.Rules.RequiredSkills.Skills
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func round(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
