package evaluation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-prep/internal/types"
)

func TestEvaluateHR_StrongResumePasses(t *testing.T) {
	evals := EvaluateHR(strongResume(), testRules())

	require.Len(t, evals, 5)
	for _, e := range evals {
		assert.True(t, e.Passed, e.RuleID)
		assert.Equal(t, types.CategoryHR, e.Category)
	}
}

func TestEvaluateHR_Rules(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(r *types.Resume)
		ruleID     string
		wantPassed bool
	}{
		{
			name: "no metrics",
			mutate: func(r *types.Resume) {
				r.PersonalInfo.Summary = strings.Repeat("student ", 25)
				r.Experiences[0].Description = "Built a dashboard"
				r.Projects = nil
			},
			ruleID:     RuleImpactMetrics,
			wantPassed: false,
		},
		{
			name: "no strong verbs",
			mutate: func(r *types.Resume) {
				r.PersonalInfo.Summary = strings.Repeat("student ", 25)
				r.Experiences[0].Description = "Made a dashboard for 2,000 students"
				r.Projects = nil
			},
			ruleID:     RuleActionVerbs,
			wantPassed: false,
		},
		{
			name:       "no links",
			mutate:     func(r *types.Resume) { r.PersonalInfo.GitHub = "" },
			ruleID:     RuleOnlinePresence,
			wantPassed: false,
		},
		{
			name: "portfolio counts as presence",
			mutate: func(r *types.Resume) {
				r.PersonalInfo.GitHub = ""
				r.PersonalInfo.Portfolio = "https://asha.dev"
			},
			ruleID:     RuleOnlinePresence,
			wantPassed: true,
		},
		{
			name: "skills never used",
			mutate: func(r *types.Resume) {
				r.Skills = []types.SkillGroup{{Items: []string{"Rust", "Haskell", "Elixir", "Scala"}}}
			},
			ruleID:     RuleSkillEvidence,
			wantPassed: false,
		},
		{
			name:       "no skills declared",
			mutate:     func(r *types.Resume) { r.Skills = nil },
			ruleID:     RuleSkillEvidence,
			wantPassed: true,
		},
		{
			name:       "summary too short",
			mutate:     func(r *types.Resume) { r.PersonalInfo.Summary = "Aspiring developer" },
			ruleID:     RuleSummaryLength,
			wantPassed: false,
		},
		{
			name:       "summary too long",
			mutate:     func(r *types.Resume) { r.PersonalInfo.Summary = strings.Repeat("word ", 101) },
			ruleID:     RuleSummaryLength,
			wantPassed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := strongResume()
			tt.mutate(resume)

			eval, ok := types.FindEvaluation(EvaluateHR(resume, testRules()), tt.ruleID)
			require.True(t, ok)
			assert.Equal(t, tt.wantPassed, eval.Passed)
			if !tt.wantPassed {
				assert.NotEmpty(t, eval.Suggestion)
			}
		})
	}
}

func TestSkillCredibility(t *testing.T) {
	resume := strongResume()
	// react, node.js, express, mongodb and redis appear in experience or projects; javascript, python and git do not
	assert.InDelta(t, 5.0/8.0, SkillCredibility(resume), 1e-9)
	assert.Equal(t, 1.0, SkillCredibility(&types.Resume{}))
}

func TestEvaluateHR_SummaryRangeFromBundle(t *testing.T) {
	rules := testRules()
	rules.Rules.ResumeStructure.SummaryWords = types.WordRange{Min: 5, Max: 10}

	resume := strongResume()
	resume.PersonalInfo.Summary = "Web developer building React apps for students"

	eval, ok := types.FindEvaluation(EvaluateHR(resume, rules), RuleSummaryLength)
	require.True(t, ok)
	assert.True(t, eval.Passed)
	assert.Equal(t, 7.0, eval.Observed)
}
