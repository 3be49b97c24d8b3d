package evaluation

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/placement-prep/internal/parsing"
	"github.com/jonathan/placement-prep/internal/types"
)

// Built-in red flag IDs
const (
	RuleUnprofessionalEmail = "RF_01"
	RuleSkillStuffing       = "RF_02"
	RuleNoMetrics           = "RF_03"
	RulePronounOveruse      = "RF_04"
	RuleWeakVerbBullets     = "RF_05"
)

// Red flag penalties and thresholds
const (
	PenaltyUnprofessionalEmail = 5
	PenaltySkillStuffing       = 6
	PenaltyNoMetrics           = 4
	PenaltyPronounOveruse      = 3
	PenaltyWeakVerbBullets     = 4

	MaxSkillsBeforeStuffing = 30
	MaxFirstPersonPronouns  = 3
	MaxWeakBulletRatio      = 0.5
)

var unprofessionalEmailTerms = []string{
	"cool", "sexy", "hot", "babe", "baby", "cute", "princess", "prince", "queen",
	"killer", "devil", "angel", "rockstar", "dude", "lover", "crazy", "sweet",
	"gamer", "xxx", "420", "69", "boss", "swag", "naughty", "party",
}

var firstPersonPronouns = []string{"i", "me", "my", "mine", "myself"}

// UnprofessionalEmail reports whether the local part of an email contains an unprofessional term
func UnprofessionalEmail(email string) (string, bool) {
	local, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(email)), "@")
	for _, term := range unprofessionalEmailTerms {
		if strings.Contains(local, term) {
			return term, true
		}
	}
	return "", false
}

// CountFirstPersonPronouns counts whole-word first-person pronouns in text
func CountFirstPersonPronouns(text string) int {
	total := 0
	for _, p := range firstPersonPronouns {
		total += CountWord(text, p)
	}
	return total
}

// EvaluateRedFlags runs the built-in red flags followed by the bundle's pattern flags.
// Every evaluation carries a negative weight; the penalty only counts when the evaluation failed.
func EvaluateRedFlags(resume *types.Resume, rules *types.LevelRules) []types.RuleEvaluation {
	g := groupsOf(rules)
	corpus := parsing.ExtractText(resume)

	_, badEmail := UnprofessionalEmail(resume.PersonalInfo.Email)
	skills := len(parsing.SkillTokens(resume))
	metrics := NewMetricDetector(g.MetricsFramework.Units).Count(corpus)
	pronouns := CountFirstPersonPronouns(corpus)
	weakRatio := WeakBulletRatio(parsing.Bullets(resume), g.PowerWords.WeakVerbs)

	evals := []types.RuleEvaluation{
		redFlag(RuleUnprofessionalEmail, !badEmail, PenaltyUnprofessionalEmail, 0,
			"Email address looks unprofessional",
			"Use a professional email based on your name, such as firstname.lastname@example.com"),
		redFlag(RuleSkillStuffing, skills <= MaxSkillsBeforeStuffing, PenaltySkillStuffing, float64(skills),
			"More than 30 skills listed (keyword stuffing)",
			"Trim your skills list to the 15-25 most relevant skills for the role"),
		redFlag(RuleNoMetrics, metrics >= MinMetrics, PenaltyNoMetrics, float64(metrics),
			"Fewer than two quantified achievements",
			"Add numbers to at least two bullets: users served, time saved, percentage improved"),
		redFlag(RulePronounOveruse, pronouns <= MaxFirstPersonPronouns, PenaltyPronounOveruse, float64(pronouns),
			"First-person pronouns are overused",
			"Drop \"I\", \"me\" and \"my\"; start bullets with the action instead"),
		redFlag(RuleWeakVerbBullets, weakRatio < MaxWeakBulletRatio, PenaltyWeakVerbBullets, weakRatio,
			"At least half of the bullets start with weak verbs",
			"Replace openers like \"responsible for\" or \"worked on\" with strong action verbs"),
	}

	for _, flag := range g.RedFlags.Flags {
		re, err := regexp.Compile("(?i)" + flag.Pattern)
		if err != nil {
			continue
		}
		matches := len(re.FindAllStringIndex(corpus, -1))
		penalty := math.Abs(flag.Penalty)
		evals = append(evals, redFlag(flag.ID, matches == 0, penalty, float64(matches), flag.Description, flag.Suggestion))
	}

	return evals
}

func redFlag(id string, passed bool, penalty, observed float64, description, suggestion string) types.RuleEvaluation {
	return types.RuleEvaluation{
		RuleID:      id,
		Passed:      passed,
		Description: description,
		Suggestion:  failText(passed, suggestion),
		Weight:      -math.Abs(penalty),
		Category:    types.CategoryRedFlag,
		Observed:    observed,
	}
}
