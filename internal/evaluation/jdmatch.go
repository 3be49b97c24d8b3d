package evaluation

import (
	"strings"

	"github.com/jonathan/placement-prep/internal/parsing"
	"github.com/jonathan/placement-prep/internal/types"
)

// JD-match rule IDs
const (
	RuleRequiredOverlap  = "JD_01"
	RulePreferredOverlap = "JD_02"
	RuleStackMatch       = "JD_03"
	RuleRoleAlignment    = "JD_04"
)

// JD-match thresholds
const (
	MinRequiredOverlap  = 0.6
	MinPreferredOverlap = 0.3
)

// EvaluateJD matches the resume against a job context. It returns nil when job is nil.
func EvaluateJD(resume *types.Resume, rules *types.LevelRules, job *types.JobContext) []types.RuleEvaluation {
	if job == nil {
		return nil
	}

	corpus := parsing.ExtractText(resume)
	known := knownSkills(rules)

	required, missingRequired := SkillOverlap(corpus, job.RequiredSkills, known)
	preferred, missingPreferred := SkillOverlap(corpus, job.PreferredSkills, known)

	jobText := strings.ToLower(strings.Join(append(append([]string{job.Title, job.Description}, job.RequiredSkills...), job.PreferredSkills...), " "))
	jobStacks := StacksIn(jobText)
	stackMatched := len(jobStacks) == 0
	for _, name := range jobStacks {
		for _, s := range stacks {
			if s.Name == name && s.Fits(corpus) {
				stackMatched = true
			}
		}
	}

	role := strings.ToLower(strings.TrimSpace(job.RoleType))
	if role == "" {
		role = DetectRoleType(job.Title + " " + job.Description)
	}
	aligned := roleAligned(corpus, role)

	return []types.RuleEvaluation{
		{
			RuleID:      RuleRequiredOverlap,
			Passed:      required >= MinRequiredOverlap,
			Description: "Resume covers at least 60% of the required skills",
			Suggestion:  failText(required >= MinRequiredOverlap, missingText("Add evidence for the required skills you have: ", missingRequired)),
			Weight:      3,
			Category:    types.CategoryJD,
			Observed:    required,
		},
		{
			RuleID:      RulePreferredOverlap,
			Passed:      preferred >= MinPreferredOverlap,
			Description: "Resume covers at least 30% of the preferred skills",
			Suggestion:  failText(preferred >= MinPreferredOverlap, missingText("Consider highlighting preferred skills: ", missingPreferred)),
			Weight:      1,
			Category:    types.CategoryJD,
			Observed:    preferred,
		},
		{
			RuleID:      RuleStackMatch,
			Passed:      stackMatched,
			Description: "Resume matches the technology stack of the job",
			Suggestion:  failText(stackMatched, "Show a project built on the "+strings.Join(jobStacks, "/")+" stack named in the posting"),
			Weight:      1.5,
			Category:    types.CategoryJD,
		},
		{
			RuleID:      RuleRoleAlignment,
			Passed:      aligned,
			Description: "Experience aligns with the role type of the job",
			Suggestion:  failText(aligned, "Tailor your summary and bullets toward "+role+" work"),
			Weight:      1,
			Category:    types.CategoryJD,
		},
	}
}

// SkillOverlap returns the share of wanted skills found in the lowercase corpus and the ones missing.
// A wanted skill that matches a rule skill by canonical name also matches through the rule's aliases.
// An empty wanted list overlaps fully.
func SkillOverlap(corpus string, wanted []string, known map[string]types.SkillRule) (float64, []string) {
	if len(wanted) == 0 {
		return 1, nil
	}
	found := 0
	var missing []string
	for _, skill := range wanted {
		rule, ok := known[parsing.SkillKey(skill)]
		if !ok {
			rule = types.SkillRule{Name: skill}
		}
		if parsing.ContainsSkill(corpus, rule) || parsing.ContainsAny(corpus, skill) {
			found++
		} else {
			missing = append(missing, skill)
		}
	}
	return float64(found) / float64(len(wanted)), missing
}

func knownSkills(rules *types.LevelRules) map[string]types.SkillRule {
	known := make(map[string]types.SkillRule)
	if rules == nil {
		return known
	}
	for _, group := range []types.SkillGroupRules{rules.Rules.RequiredSkills, rules.Rules.NiceToHaveSkills} {
		for _, s := range group.Skills {
			known[parsing.SkillKey(s.Name)] = s
		}
	}
	return known
}

func missingText(prefix string, missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return prefix + strings.Join(missing, ", ")
}
