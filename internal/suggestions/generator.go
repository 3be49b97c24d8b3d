// Package suggestions turns rule checks into actionable, template-driven feedback.
// Field suggestions are routed by (section, field); global suggestions look at the whole resume.
// All text comes from the templates catalogue and every replacement is a literal substitution.
package suggestions

import (
	"sort"
	"strings"

	"github.com/jonathan/placement-prep/internal/types"
)

// Sections and fields recognised by the router
const (
	SectionPersonal   = "personal"
	SectionExperience = "experience"
	SectionProjects   = "projects"
	SectionSkills     = "skills"

	FieldSummary      = "summary"
	FieldEmail        = "email"
	FieldDescription  = "description"
	FieldAchievements = "achievements"
	FieldItems        = "items"
)

// defaultDomainLabel fills {{.Domain}} when the generator has no display name
const defaultDomainLabel = "your target"

// Input is what a field analyzer receives
type Input struct {
	Text    string
	Section string
	Field   string
	Domain  string
	Rules   *types.LevelRules
}

// Analyzer inspects one field value and returns zero or more suggestions
type Analyzer func(in Input) []types.Suggestion

type route struct {
	section string
	field   string
}

var routes = map[route][]Analyzer{
	{SectionExperience, FieldDescription}:  {AnalyzeBulletPoint, CheckForMetrics, CheckPassiveVoice},
	{SectionExperience, FieldAchievements}: {AnalyzeBulletPoint, CheckForMetrics, CheckPassiveVoice},
	{SectionProjects, FieldDescription}:    {AnalyzeBulletPoint, CheckForMetrics},
	{SectionPersonal, FieldSummary}:        {CheckSkillMentions, CheckYearsOfExperience, CheckSummaryLength},
	{SectionSkills, FieldItems}:            {CheckCriticalSkillGap},
	{SectionPersonal, FieldEmail}:          {CheckProfessionalEmail},
}

// Routes returns the supported "section.field" pairs, sorted
func Routes() []string {
	out := make([]string, 0, len(routes))
	for r := range routes {
		out = append(out, r.section+"."+r.field)
	}
	sort.Strings(out)
	return out
}

// Generator produces suggestions for one domain level
type Generator struct {
	Rules  *types.LevelRules
	Domain string // display name used in messages
}

// New creates a Generator. An empty domain renders as a generic label.
func New(rules *types.LevelRules, domain string) *Generator {
	return &Generator{Rules: rules, Domain: domain}
}

// SuggestField analyzes a single field value with the default generator
func SuggestField(text, field, section string, rules *types.LevelRules) []types.Suggestion {
	return New(rules, "").Field(text, field, section)
}

// SuggestGlobal analyzes the whole resume with the default generator
func SuggestGlobal(resume *types.Resume, rules *types.LevelRules) []types.Suggestion {
	return New(rules, "").Global(resume)
}

// Field runs the analyzers routed to (section, field). Unknown pairs return nil.
func (g *Generator) Field(text, field, section string) []types.Suggestion {
	section = strings.ToLower(strings.TrimSpace(section))
	field = strings.ToLower(strings.TrimSpace(field))

	analyzers, ok := routes[route{section, field}]
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}

	in := Input{Text: text, Section: section, Field: field, Domain: g.domainLabel(), Rules: g.Rules}
	var out []types.Suggestion
	for _, analyze := range analyzers {
		for _, s := range analyze(in) {
			if s.Section == "" {
				s.Section = section
			}
			if s.Field == "" {
				s.Field = field
			}
			out = append(out, s)
		}
	}
	return Dedup(out)
}

func (g *Generator) domainLabel() string {
	if strings.TrimSpace(g.Domain) == "" {
		return defaultDomainLabel
	}
	return g.Domain
}

// Dedup removes suggestions whose message was already seen, keeping the first occurrence
func Dedup(suggestions []types.Suggestion) []types.Suggestion {
	if len(suggestions) == 0 {
		return suggestions
	}
	seen := make(map[string]bool, len(suggestions))
	out := suggestions[:0:0]
	for _, s := range suggestions {
		if seen[s.Message] {
			continue
		}
		seen[s.Message] = true
		out = append(out, s)
	}
	return out
}

func groupsOf(rules *types.LevelRules) types.RuleGroups {
	if rules == nil {
		return types.RuleGroups{}
	}
	return rules.Rules
}
