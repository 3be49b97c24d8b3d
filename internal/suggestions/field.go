package suggestions

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/placement-prep/internal/evaluation"
	"github.com/jonathan/placement-prep/internal/parsing"
	"github.com/jonathan/placement-prep/internal/rules"
	"github.com/jonathan/placement-prep/internal/templates"
	"github.com/jonathan/placement-prep/internal/types"
)

// maxListedSkills caps how many skill names a single message lists
const maxListedSkills = 5

var (
	passivePattern = regexp.MustCompile(`(?i)\b(?:was|were|is|are|been|being|be)\s+(?:\w+ly\s+)?\w+(?:ed|en|wn|lt|ught)\b`)
	levelPattern   = regexp.MustCompile(`(?i)\b\d+\+?\s*(?:years?|yrs?|months?)\b|\b(?:fresher|graduate|undergraduate|student|final[- ]year|intern|entry[- ]level|junior|senior|experienced)\b`)
)

// AnalyzeBulletPoint flags weak verbs in each bullet and proposes a literal replacement.
// A weak opener is high severity; a weak verb mid-sentence is medium.
func AnalyzeBulletPoint(in Input) []types.Suggestion {
	g := groupsOf(in.Rules)

	bullets := parsing.SplitBullets(in.Text)
	if len(bullets) == 0 {
		bullets = []string{strings.TrimSpace(in.Text)}
	}

	var out []types.Suggestion
	for _, bullet := range bullets {
		replaced, weak, strong, leading, ok := ReplaceWeakVerb(bullet, g.PowerWords.WeakVerbs, g.PowerWords.Words)
		if !ok {
			continue
		}
		data := map[string]string{"Weak": weak, "Strong": capitalize(strong)}
		s := types.Suggestion{
			Type:            types.SuggestionImprovement,
			ApplySuggestion: replaced,
		}
		if leading {
			s.Severity = types.SeverityHigh
			s.Message = templates.Render(templates.Field, "weak-verb.message", data)
			s.Suggestion = templates.Render(templates.Field, "weak-verb.suggestion", data)
			s.Example = templates.Render(templates.Field, "weak-verb.example", data)
		} else {
			s.Severity = types.SeverityMedium
			s.Message = templates.Render(templates.Field, "weak-verb-inline.message", data)
			s.Suggestion = templates.Render(templates.Field, "weak-verb-inline.suggestion", map[string]string{"Weak": weak, "Strong": strong})
		}
		out = append(out, s)
	}
	return out
}

// CheckForMetrics suggests quantifying text that carries no detectable metric
func CheckForMetrics(in Input) []types.Suggestion {
	if evaluation.NewMetricDetector(groupsOf(in.Rules).MetricsFramework.Units).HasMetric(in.Text) {
		return nil
	}
	return []types.Suggestion{{
		Type:       types.SuggestionImprovement,
		Severity:   types.SeverityMedium,
		Message:    templates.Render(templates.Field, "metrics-missing.message", nil),
		Suggestion: templates.Render(templates.Field, "metrics-missing.suggestion", nil),
		Example:    templates.Render(templates.Field, "metrics-missing.example", nil),
	}}
}

// CheckPassiveVoice flags the first passive construction
func CheckPassiveVoice(in Input) []types.Suggestion {
	phrase := passivePattern.FindString(in.Text)
	if phrase == "" {
		return nil
	}
	data := map[string]string{"Phrase": phrase}
	return []types.Suggestion{{
		Type:       types.SuggestionImprovement,
		Severity:   types.SeverityMedium,
		Message:    templates.Render(templates.Field, "passive-voice.message", data),
		Suggestion: templates.Render(templates.Field, "passive-voice.suggestion", data),
		Example:    templates.Render(templates.Field, "passive-voice.example", data),
	}}
}

// CheckSkillMentions suggests naming required skills in the summary when none appear
func CheckSkillMentions(in Input) []types.Suggestion {
	skills := groupsOf(in.Rules).RequiredSkills.Skills
	if len(skills) == 0 {
		return nil
	}
	corpus := strings.ToLower(in.Text)
	for _, s := range skills {
		if parsing.ContainsSkill(corpus, s) {
			return nil
		}
	}
	data := map[string]string{"Domain": in.Domain, "Skills": skillList(skills, 3)}
	return []types.Suggestion{{
		Type:       types.SuggestionImprovement,
		Severity:   types.SeverityMedium,
		Message:    templates.Render(templates.Field, "summary-skills.message", data),
		Suggestion: templates.Render(templates.Field, "summary-skills.suggestion", data),
	}}
}

// CheckYearsOfExperience tips the user to state their experience level
func CheckYearsOfExperience(in Input) []types.Suggestion {
	if levelPattern.MatchString(in.Text) {
		return nil
	}
	return []types.Suggestion{{
		Type:       types.SuggestionTip,
		Severity:   types.SeverityLow,
		Message:    templates.Render(templates.Field, "summary-years.message", nil),
		Suggestion: templates.Render(templates.Field, "summary-years.suggestion", nil),
		Example:    templates.Render(templates.Field, "summary-years.example", nil),
	}}
}

// CheckSummaryLength compares the summary word count to the level's recommended range
func CheckSummaryLength(in Input) []types.Suggestion {
	return summaryLength(templates.Field, in.Text, in.Rules)
}

func summaryLength(file, text string, levelRules *types.LevelRules) []types.Suggestion {
	lo, hi := summaryRange(levelRules)
	count := parsing.WordCount(text)
	data := map[string]string{
		"Count": strconv.Itoa(count),
		"Min":   strconv.Itoa(lo),
		"Max":   strconv.Itoa(hi),
	}
	switch {
	case count < lo:
		return []types.Suggestion{{
			Type:       types.SuggestionImprovement,
			Severity:   types.SeverityMedium,
			Message:    templates.Render(file, "summary-short.message", data),
			Suggestion: templates.Render(file, "summary-short.suggestion", data),
		}}
	case count > hi:
		return []types.Suggestion{{
			Type:       types.SuggestionWarning,
			Severity:   types.SeverityMedium,
			Message:    templates.Render(file, "summary-long.message", data),
			Suggestion: templates.Render(file, "summary-long.suggestion", data),
		}}
	default:
		return nil
	}
}

// CheckCriticalSkillGap lists critical skills missing from the skills field
func CheckCriticalSkillGap(in Input) []types.Suggestion {
	missing := missingSkills(strings.ToLower(in.Text), criticalSkills(in.Rules))
	if len(missing) == 0 {
		return nil
	}
	data := map[string]string{"Domain": in.Domain, "Skills": skillList(missing, maxListedSkills)}
	return []types.Suggestion{{
		Type:       types.SuggestionWarning,
		Severity:   types.SeverityHigh,
		Message:    templates.Render(templates.Field, "skill-gap-critical.message", data),
		Suggestion: templates.Render(templates.Field, "skill-gap-critical.suggestion", data),
	}}
}

// CheckProfessionalEmail flags malformed or unprofessional addresses
func CheckProfessionalEmail(in Input) []types.Suggestion {
	email := strings.TrimSpace(in.Text)
	if !evaluation.ValidEmail(email) {
		return []types.Suggestion{{
			Type:       types.SuggestionWarning,
			Severity:   types.SeverityHigh,
			Message:    templates.Render(templates.Field, "email-invalid.message", nil),
			Suggestion: templates.Render(templates.Field, "email-invalid.suggestion", nil),
		}}
	}
	if term, bad := evaluation.UnprofessionalEmail(email); bad {
		data := map[string]string{"Term": term}
		return []types.Suggestion{{
			Type:       types.SuggestionWarning,
			Severity:   types.SeverityMedium,
			Message:    templates.Render(templates.Field, "email-unprofessional.message", data),
			Suggestion: templates.Render(templates.Field, "email-unprofessional.suggestion", data),
		}}
	}
	return nil
}

// criticalSkills returns required skills marked critical, or every required skill when none are
func criticalSkills(levelRules *types.LevelRules) []types.SkillRule {
	required := groupsOf(levelRules).RequiredSkills.Skills
	var critical []types.SkillRule
	for _, s := range required {
		if s.Importance == types.ImportanceCritical {
			critical = append(critical, s)
		}
	}
	if len(critical) == 0 {
		return required
	}
	return critical
}

func missingSkills(corpus string, skills []types.SkillRule) []types.SkillRule {
	var missing []types.SkillRule
	for _, s := range skills {
		if !parsing.ContainsSkill(corpus, s) {
			missing = append(missing, s)
		}
	}
	return missing
}

func skillList(skills []types.SkillRule, limit int) string {
	names := make([]string, 0, limit)
	for _, s := range skills {
		if len(names) == limit {
			break
		}
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func summaryRange(levelRules *types.LevelRules) (int, int) {
	r := groupsOf(levelRules).ResumeStructure.SummaryWords
	lo, hi := r.Min, r.Max
	if lo <= 0 {
		lo = rules.DefaultSummaryMinWords
	}
	if hi <= 0 {
		hi = rules.DefaultSummaryMaxWords
	}
	return lo, hi
}
