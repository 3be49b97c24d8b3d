package evaluation

import (
	"fmt"
	"strings"

	"github.com/jonathan/placement-prep/internal/parsing"
	"github.com/jonathan/placement-prep/internal/types"
)

// HR rule IDs
const (
	RuleImpactMetrics  = "HR_01"
	RuleActionVerbs    = "HR_02"
	RuleOnlinePresence = "HR_03"
	RuleSkillEvidence  = "HR_04"
	RuleSummaryLength  = "HR_05"
)

// HR thresholds
const (
	MinMetrics          = 2
	MinStrongVerbRatio  = 0.02
	MinSkillCredibility = 0.30
)

// EvaluateHR runs the recruiter-oriented quality checks
func EvaluateHR(resume *types.Resume, rules *types.LevelRules) []types.RuleEvaluation {
	g := groupsOf(rules)
	corpus := parsing.ExtractText(resume)

	metrics := NewMetricDetector(g.MetricsFramework.Units).Count(corpus)

	words := parsing.WordCount(corpus)
	verbRatio := 0.0
	if words > 0 {
		verbRatio = float64(StrongVerbOccurrences(corpus, g.PowerWords.Words)) / float64(words)
	}

	p := resume.PersonalInfo
	online := strings.TrimSpace(p.GitHub) != "" || strings.TrimSpace(p.Portfolio) != "" || strings.TrimSpace(p.Website) != ""

	credibility := SkillCredibility(resume)

	summaryWords := parsing.WordCount(p.Summary)
	summaryRange := g.ResumeStructure.SummaryWords
	if summaryRange.Min <= 0 {
		summaryRange.Min = 20
	}
	if summaryRange.Max <= 0 {
		summaryRange.Max = 100
	}

	return []types.RuleEvaluation{
		{
			RuleID:      RuleImpactMetrics,
			Passed:      metrics >= MinMetrics,
			Description: "At least two quantified achievements",
			Suggestion:  failText(metrics >= MinMetrics, "Quantify your impact with numbers, percentages or scale, for example \"reduced load time by 40%\""),
			Weight:      2,
			Category:    types.CategoryHR,
			Observed:    float64(metrics),
		},
		{
			RuleID:      RuleActionVerbs,
			Passed:      verbRatio >= MinStrongVerbRatio,
			Description: "Strong action verbs are used throughout",
			Suggestion:  failText(verbRatio >= MinStrongVerbRatio, "Start bullets with strong action verbs such as led, built, optimized or launched"),
			Weight:      1.5,
			Category:    types.CategoryHR,
			Observed:    verbRatio,
		},
		{
			RuleID:      RuleOnlinePresence,
			Passed:      online,
			Description: "GitHub or portfolio link is present",
			Suggestion:  failText(online, "Add a GitHub profile or portfolio link so recruiters can see your work"),
			Weight:      1,
			Category:    types.CategoryHR,
		},
		{
			RuleID:      RuleSkillEvidence,
			Passed:      credibility >= MinSkillCredibility,
			Description: "Declared skills are backed by experience or projects",
			Suggestion:  failText(credibility >= MinSkillCredibility, "Mention your listed skills in experience or project bullets to show where you used them"),
			Weight:      1.5,
			Category:    types.CategoryHR,
			Observed:    credibility,
		},
		{
			RuleID:      RuleSummaryLength,
			Passed:      summaryWords >= summaryRange.Min && summaryWords <= summaryRange.Max,
			Description: "Summary length is within the recommended range",
			Suggestion: failText(summaryWords >= summaryRange.Min && summaryWords <= summaryRange.Max,
				fmt.Sprintf("Keep your summary between %d and %d words", summaryRange.Min, summaryRange.Max)),
			Weight:   1,
			Category: types.CategoryHR,
			Observed: float64(summaryWords),
		},
	}
}

// SkillCredibility is the share of declared skills that also appear in experience or project text.
// A resume that declares no skills is fully credible.
func SkillCredibility(resume *types.Resume) float64 {
	tokens := parsing.SkillTokens(resume)
	if len(tokens) == 0 {
		return 1
	}
	evidence := parsing.ExperienceText(resume)
	backed := 0
	for _, token := range tokens {
		if strings.Contains(evidence, strings.ToLower(token)) {
			backed++
		}
	}
	return float64(backed) / float64(len(tokens))
}

func failText(passed bool, text string) string {
	if passed {
		return ""
	}
	return text
}

func groupsOf(rules *types.LevelRules) types.RuleGroups {
	if rules == nil {
		return types.RuleGroups{}
	}
	return rules.Rules
}
