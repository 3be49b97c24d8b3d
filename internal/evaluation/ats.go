// Package evaluation implements the rule evaluators. Each evaluator is a pure function of the resume,
// the active level's rules and, for job-description matching, a job context.
package evaluation

import (
	"regexp"
	"strings"

	"github.com/jonathan/placement-prep/internal/parsing"
	"github.com/jonathan/placement-prep/internal/types"
)

// ATS rule IDs
const (
	RuleContactInfo   = "ATS_01"
	RuleEmailFormat   = "ATS_02"
	RuleSkillCount    = "ATS_03"
	RuleExperience    = "ATS_04"
	RuleEducation     = "ATS_05"
	RuleSkillsSection = "ATS_06"
	RuleSummary       = "ATS_07"
)

// Skill count range accepted by applicant tracking systems
const (
	MinSkillCount = 5
	MaxSkillCount = 25
)

var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// atsCheck is a canned structural rule
type atsCheck struct {
	id          string
	description string
	suggestion  string
	weight      float64
	check       func(r *types.Resume) (bool, float64)
}

var atsChecks = []atsCheck{
	{
		id:          RuleContactInfo,
		description: "Contact information includes full name, email and phone",
		suggestion:  "Add your full name, email address and phone number so recruiters can reach you",
		weight:      2,
		check: func(r *types.Resume) (bool, float64) {
			p := r.PersonalInfo
			present := 0
			for _, v := range []string{p.FullName, p.Email, p.Phone} {
				if strings.TrimSpace(v) != "" {
					present++
				}
			}
			return present == 3, float64(present)
		},
	},
	{
		id:          RuleEmailFormat,
		description: "Email address is well formed",
		suggestion:  "Use a valid email address such as firstname.lastname@example.com",
		weight:      1,
		check: func(r *types.Resume) (bool, float64) {
			return emailPattern.MatchString(strings.TrimSpace(r.PersonalInfo.Email)), 0
		},
	},
	{
		id:          RuleSkillCount,
		description: "Skills section lists between 5 and 25 skills",
		suggestion:  "List between 5 and 25 relevant skills; parsers discount both sparse and stuffed skill lists",
		weight:      1,
		check: func(r *types.Resume) (bool, float64) {
			n := len(parsing.SkillTokens(r))
			return n >= MinSkillCount && n <= MaxSkillCount, float64(n)
		},
	},
	{
		id:          RuleExperience,
		description: "Experience section is present",
		suggestion:  "Add internships, part-time roles or freelance work to the experience section",
		weight:      2,
		check: func(r *types.Resume) (bool, float64) {
			return len(r.Experiences) > 0, float64(len(r.Experiences))
		},
	},
	{
		id:          RuleEducation,
		description: "Education section is present",
		suggestion:  "Add your degree, institution and graduation year",
		weight:      1.5,
		check: func(r *types.Resume) (bool, float64) {
			return len(r.Education) > 0, float64(len(r.Education))
		},
	},
	{
		id:          RuleSkillsSection,
		description: "Skills section is present",
		suggestion:  "Add a skills section grouped by category",
		weight:      1.5,
		check: func(r *types.Resume) (bool, float64) {
			return len(parsing.SkillTokens(r)) > 0, 0
		},
	},
	{
		id:          RuleSummary,
		description: "Professional summary is present",
		suggestion:  "Add a two to four sentence summary naming your target role and strongest skills",
		weight:      1,
		check: func(r *types.Resume) (bool, float64) {
			return strings.TrimSpace(r.PersonalInfo.Summary) != "", 0
		},
	},
}

// EvaluateATS runs the structural completeness checks.
// Descriptions, suggestions and weights can be overridden per rule ID by the bundle's atsOptimization rules.
func EvaluateATS(resume *types.Resume, rules *types.LevelRules) []types.RuleEvaluation {
	overrides := make(map[string]types.ATSRule)
	if rules != nil {
		for _, o := range rules.Rules.ATSOptimization.Rules {
			overrides[o.ID] = o
		}
	}

	evals := make([]types.RuleEvaluation, 0, len(atsChecks))
	for _, c := range atsChecks {
		passed, observed := c.check(resume)
		eval := types.RuleEvaluation{
			RuleID:      c.id,
			Passed:      passed,
			Description: c.description,
			Weight:      c.weight,
			Category:    types.CategoryATS,
			Observed:    observed,
		}
		if o, ok := overrides[c.id]; ok {
			if o.Description != "" {
				eval.Description = o.Description
			}
			if o.Suggestion != "" {
				c.suggestion = o.Suggestion
			}
			if o.Weight > 0 {
				eval.Weight = o.Weight
			}
		}
		if !passed {
			eval.Suggestion = c.suggestion
		}
		evals = append(evals, eval)
	}
	return evals
}

// ValidEmail reports whether email is well formed
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
