package rules

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/jonathan/placement-prep/internal/types"
)

// Defaults applied while building a DomainRules value
const (
	DefaultGroupImportance   = 1.0
	DefaultMetricsTarget     = 4
	DefaultPowerWordTarget   = 8
	DefaultRedFlagPenalty    = 3.0
	DefaultSummaryMinWords   = 20
	DefaultSummaryMaxWords   = 100
	defaultSkillImportance   = types.ImportanceMedium
	defaultPowerWordStrength = types.StrengthMedium
)

var defaultWeakVerbs = []string{
	"responsible for", "worked on", "helped", "assisted", "participated in",
	"was involved in", "handled", "did", "made", "used", "tried", "got",
}

var defaultMetricUnits = []string{
	"users", "customers", "clients", "students", "people", "members", "teams",
	"requests", "transactions", "records", "rows", "queries", "downloads", "visits",
	"ms", "milliseconds", "seconds", "minutes", "hours", "days", "weeks", "months",
	"projects", "features", "endpoints", "services", "servers", "nodes", "pipelines",
	"models", "datasets", "tests", "bugs", "tickets", "vulnerabilities", "incidents",
	"lines", "pages", "apis", "gb", "tb", "mb", "k", "m",
}

var defaultSections = []types.SectionGuideline{
	{Name: "personal", Required: true, Guideline: "Name, email, phone and at least one professional link"},
	{Name: "summary", Required: true, Guideline: "Two to four sentences tailored to the target role"},
	{Name: "experience", Required: true, Guideline: "Internships and jobs with quantified bullets"},
	{Name: "education", Required: true, Guideline: "Degree, institution and graduation year"},
	{Name: "skills", Required: true, Guideline: "Grouped technical skills relevant to the role"},
	{Name: "projects", Required: false, Guideline: "Projects with the stack used and measurable results"},
}

// skillWeightFor maps an importance label to the default skill weight
func skillWeightFor(importance string) float64 {
	switch importance {
	case types.ImportanceCritical:
		return 1.0
	case types.ImportanceHigh:
		return 0.8
	case types.ImportanceLow:
		return 0.3
	default:
		return 0.5
	}
}

// Finalize turns a decoded bundle into canonical DomainRules.
// Missing levels inherit the midLevel groups (or the first level present), and every group gets its defaults.
func Finalize(domain string, raw *RawBundle) (*types.DomainRules, error) {
	base, ok := baseLevel(raw)
	if !ok {
		return nil, fmt.Errorf("bundle defines no experience levels")
	}

	rules := &types.DomainRules{
		Domain:      raw.Domain,
		DisplayName: raw.DisplayName,
	}
	if rules.Domain == "" {
		rules.Domain = domain
	}
	if rules.DisplayName == "" {
		rules.DisplayName = displayName(domain)
	}

	for _, level := range types.Levels() {
		src, exists := raw.Levels[level]
		if !exists {
			src = base
		}

		lr := &types.LevelRules{Rules: cloneGroups(src.Rules)}
		if src.Weights != nil {
			lr.OverallScoringWeights = *src.Weights
		} else {
			lr.OverallScoringWeights = types.DefaultScoringWeights()
		}

		if err := applyDefaults(&lr.Rules); err != nil {
			return nil, fmt.Errorf("%s: %w", level, err)
		}

		switch level {
		case types.LevelEntry:
			rules.ExperienceLevels.EntryLevel = lr
		case types.LevelMid:
			rules.ExperienceLevels.MidLevel = lr
		case types.LevelSenior:
			rules.ExperienceLevels.SeniorLevel = lr
		}
	}

	return rules, nil
}

func baseLevel(raw *RawBundle) (RawLevel, bool) {
	for _, level := range []types.Level{types.LevelMid, types.LevelEntry, types.LevelSenior} {
		if lr, ok := raw.Levels[level]; ok {
			return lr, true
		}
	}
	return RawLevel{}, false
}

func applyDefaults(g *types.RuleGroups) error {
	defaultGroup(&g.RequiredSkills.Category, &g.RequiredSkills.Importance, "Required Skills")
	defaultGroup(&g.NiceToHaveSkills.Category, &g.NiceToHaveSkills.Importance, "Nice To Have Skills")
	defaultGroup(&g.PowerWords.Category, &g.PowerWords.Importance, "Power Words")
	defaultGroup(&g.MetricsFramework.Category, &g.MetricsFramework.Importance, "Metrics")
	defaultGroup(&g.ResumeStructure.Category, &g.ResumeStructure.Importance, "Resume Structure")
	defaultGroup(&g.RedFlags.Category, &g.RedFlags.Importance, "Red Flags")
	defaultGroup(&g.ATSOptimization.Category, &g.ATSOptimization.Importance, "ATS Optimization")

	defaultSkills(g.RequiredSkills.Skills)
	defaultSkills(g.NiceToHaveSkills.Skills)

	for i := range g.PowerWords.Words {
		w := &g.PowerWords.Words[i]
		w.Word = strings.TrimSpace(w.Word)
		if w.Strength == "" {
			w.Strength = defaultPowerWordStrength
		}
	}
	if len(g.PowerWords.WeakVerbs) == 0 {
		g.PowerWords.WeakVerbs = slices.Clone(defaultWeakVerbs)
	}
	if g.PowerWords.TargetCount <= 0 {
		g.PowerWords.TargetCount = DefaultPowerWordTarget
	}

	g.MetricsFramework.Units = mergeUnits(defaultMetricUnits, g.MetricsFramework.Units)
	if g.MetricsFramework.TargetCount <= 0 {
		g.MetricsFramework.TargetCount = DefaultMetricsTarget
	}

	if len(g.ResumeStructure.Sections) == 0 {
		g.ResumeStructure.Sections = slices.Clone(defaultSections)
	}
	if g.ResumeStructure.SummaryWords.Min <= 0 {
		g.ResumeStructure.SummaryWords.Min = DefaultSummaryMinWords
	}
	if g.ResumeStructure.SummaryWords.Max <= 0 {
		g.ResumeStructure.SummaryWords.Max = DefaultSummaryMaxWords
	}

	for i := range g.RedFlags.Flags {
		f := &g.RedFlags.Flags[i]
		if _, err := regexp.Compile("(?i)" + f.Pattern); err != nil {
			return fmt.Errorf("red flag %s has an invalid pattern: %w", f.ID, err)
		}
		f.Penalty = math.Abs(f.Penalty)
		if f.Penalty == 0 {
			f.Penalty = DefaultRedFlagPenalty
		}
		if f.Description == "" {
			f.Description = fmt.Sprintf("Resume matches red-flag pattern %q", f.Pattern)
		}
	}

	return nil
}

func defaultGroup(category *string, importance *float64, name string) {
	if *category == "" {
		*category = name
	}
	if *importance <= 0 {
		*importance = DefaultGroupImportance
	}
}

func defaultSkills(skills []types.SkillRule) {
	for i := range skills {
		s := &skills[i]
		s.Name = strings.TrimSpace(s.Name)
		if s.Importance == "" {
			s.Importance = defaultSkillImportance
		}
		if s.Weight <= 0 {
			s.Weight = skillWeightFor(s.Importance)
		}
	}
}

// cloneGroups copies every slice so levels never share backing arrays
func cloneGroups(g types.RuleGroups) types.RuleGroups {
	g.RequiredSkills.Skills = slices.Clone(g.RequiredSkills.Skills)
	g.NiceToHaveSkills.Skills = slices.Clone(g.NiceToHaveSkills.Skills)
	g.PowerWords.Words = slices.Clone(g.PowerWords.Words)
	g.PowerWords.WeakVerbs = slices.Clone(g.PowerWords.WeakVerbs)
	g.MetricsFramework.Units = slices.Clone(g.MetricsFramework.Units)
	g.MetricsFramework.Examples = slices.Clone(g.MetricsFramework.Examples)
	g.ResumeStructure.Sections = slices.Clone(g.ResumeStructure.Sections)
	g.ResumeStructure.Guidelines = slices.Clone(g.ResumeStructure.Guidelines)
	g.RedFlags.Flags = slices.Clone(g.RedFlags.Flags)
	g.ATSOptimization.Rules = slices.Clone(g.ATSOptimization.Rules)
	return g
}

func displayName(domain string) string {
	parts := strings.Split(domain, "-")
	for i, part := range parts {
		switch part {
		case "aiml":
			parts[i] = "AI/ML"
		case "devops":
			parts[i] = "DevOps"
		default:
			if part != "" {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
	}
	return strings.Join(parts, " ")
}

// mergeUnits returns the default units followed by the bundle units not already listed
func mergeUnits(defaults, extra []string) []string {
	out := slices.Clone(defaults)
	seen := make(map[string]bool, len(defaults)+len(extra))
	for _, u := range defaults {
		seen[u] = true
	}
	for _, u := range extra {
		u = strings.ToLower(strings.TrimSpace(u))
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
