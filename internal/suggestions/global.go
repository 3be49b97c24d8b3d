package suggestions

import (
	"strconv"
	"strings"

	"github.com/jonathan/placement-prep/internal/evaluation"
	"github.com/jonathan/placement-prep/internal/parsing"
	"github.com/jonathan/placement-prep/internal/templates"
	"github.com/jonathan/placement-prep/internal/types"
)

// Global runs the resume-wide checks. Nice-to-have skills are only suggested once no
// critical skill is missing.
func (g *Generator) Global(resume *types.Resume) []types.Suggestion {
	if resume == nil {
		resume = &types.Resume{}
	}
	domain := g.domainLabel()
	corpus := parsing.ExtractText(resume)

	var out []types.Suggestion
	out = append(out, contactCompleteness(resume)...)
	out = append(out, onlinePresence(resume)...)
	out = append(out, summaryPresence(resume, g.Rules)...)
	out = append(out, experiencePresence(resume)...)
	out = append(out, metricsPresence(corpus, g.Rules)...)
	out = append(out, projectPresence(resume, domain)...)
	out = append(out, skillGap(corpus, g.Rules, domain)...)
	return Dedup(out)
}

func contactCompleteness(resume *types.Resume) []types.Suggestion {
	p := resume.PersonalInfo
	var missing []string
	for _, f := range []struct{ label, value string }{
		{"full name", p.FullName},
		{"email", p.Email},
		{"phone", p.Phone},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.label)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	data := map[string]string{"Fields": strings.Join(missing, ", ")}
	return []types.Suggestion{{
		Type:       types.SuggestionWarning,
		Severity:   types.SeverityCritical,
		Message:    templates.Render(templates.Global, "contact-missing.message", data),
		Suggestion: templates.Render(templates.Global, "contact-missing.suggestion", data),
		Section:    SectionPersonal,
	}}
}

func onlinePresence(resume *types.Resume) []types.Suggestion {
	p := resume.PersonalInfo
	if strings.TrimSpace(p.GitHub) != "" || strings.TrimSpace(p.Portfolio) != "" || strings.TrimSpace(p.Website) != "" {
		return nil
	}
	return []types.Suggestion{{
		Type:       types.SuggestionTip,
		Severity:   types.SeverityLow,
		Message:    templates.Render(templates.Global, "online-presence.message", nil),
		Suggestion: templates.Render(templates.Global, "online-presence.suggestion", nil),
		Section:    SectionPersonal,
	}}
}

func summaryPresence(resume *types.Resume, levelRules *types.LevelRules) []types.Suggestion {
	summary := resume.PersonalInfo.Summary
	var out []types.Suggestion
	if strings.TrimSpace(summary) == "" {
		lo, hi := summaryRange(levelRules)
		data := map[string]string{"Min": strconv.Itoa(lo), "Max": strconv.Itoa(hi)}
		out = []types.Suggestion{{
			Type:       types.SuggestionImprovement,
			Severity:   types.SeverityHigh,
			Message:    templates.Render(templates.Global, "summary-missing.message", data),
			Suggestion: templates.Render(templates.Global, "summary-missing.suggestion", data),
		}}
	} else {
		out = summaryLength(templates.Global, summary, levelRules)
	}
	for i := range out {
		out[i].Section = SectionPersonal
		out[i].Field = FieldSummary
	}
	return out
}

func experiencePresence(resume *types.Resume) []types.Suggestion {
	if len(resume.Experiences) > 0 {
		return nil
	}
	return []types.Suggestion{{
		Type:       types.SuggestionWarning,
		Severity:   types.SeverityHigh,
		Message:    templates.Render(templates.Global, "experience-missing.message", nil),
		Suggestion: templates.Render(templates.Global, "experience-missing.suggestion", nil),
		Section:    SectionExperience,
	}}
}

func metricsPresence(corpus string, levelRules *types.LevelRules) []types.Suggestion {
	count := evaluation.NewMetricDetector(groupsOf(levelRules).MetricsFramework.Units).Count(corpus)
	if count >= evaluation.MinMetrics {
		return nil
	}
	data := map[string]string{"Count": strconv.Itoa(count), "Target": strconv.Itoa(evaluation.MinMetrics)}
	return []types.Suggestion{{
		Type:       types.SuggestionImprovement,
		Severity:   types.SeverityHigh,
		Message:    templates.Render(templates.Global, "metrics-missing.message", data),
		Suggestion: templates.Render(templates.Global, "metrics-missing.suggestion", data),
		Example:    templates.Render(templates.Global, "metrics-missing.example", data),
		Section:    SectionExperience,
	}}
}

func projectPresence(resume *types.Resume, domain string) []types.Suggestion {
	if len(resume.Projects) > 0 {
		return nil
	}
	data := map[string]string{"Domain": domain}
	return []types.Suggestion{{
		Type:       types.SuggestionImprovement,
		Severity:   types.SeverityMedium,
		Message:    templates.Render(templates.Global, "projects-missing.message", data),
		Suggestion: templates.Render(templates.Global, "projects-missing.suggestion", data),
		Section:    SectionProjects,
	}}
}

func skillGap(corpus string, levelRules *types.LevelRules, domain string) []types.Suggestion {
	if missing := missingSkills(corpus, criticalSkills(levelRules)); len(missing) > 0 {
		data := map[string]string{"Domain": domain, "Skills": skillList(missing, maxListedSkills)}
		return []types.Suggestion{{
			Type:       types.SuggestionWarning,
			Severity:   types.SeverityHigh,
			Message:    templates.Render(templates.Global, "skill-gap-critical.message", data),
			Suggestion: templates.Render(templates.Global, "skill-gap-critical.suggestion", data),
			Section:    SectionSkills,
		}}
	}

	missing := missingSkills(corpus, groupsOf(levelRules).NiceToHaveSkills.Skills)
	if len(missing) == 0 {
		return nil
	}
	data := map[string]string{"Domain": domain, "Skills": skillList(missing, maxListedSkills)}
	return []types.Suggestion{{
		Type:       types.SuggestionTip,
		Severity:   types.SeverityLow,
		Message:    templates.Render(templates.Global, "skill-gap-nice.message", data),
		Suggestion: templates.Render(templates.Global, "skill-gap-nice.suggestion", data),
		Section:    SectionSkills,
	}}
}
