package rules

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-prep/internal/types"
)

func writeBundle(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadRules_AllEmbeddedDomains(t *testing.T) {
	loader := NewLoader()

	for _, domain := range AvailableDomains() {
		t.Run(domain, func(t *testing.T) {
			rules, err := loader.LoadRules(context.Background(), domain)
			require.NoError(t, err)

			assert.Equal(t, domain, rules.Domain)
			assert.NotEmpty(t, rules.DisplayName)
			for _, level := range types.Levels() {
				lr := rules.ForLevel(level)
				require.NotNil(t, lr, "level %s", level)
				assert.NotEmpty(t, lr.Rules.RequiredSkills.Skills)
				assert.NotEmpty(t, lr.Rules.PowerWords.Words)
				assert.NotEmpty(t, lr.Rules.PowerWords.WeakVerbs)
				assert.NotEmpty(t, lr.Rules.MetricsFramework.Units)
				assert.InDelta(t, 1.0, lr.OverallScoringWeights.Sum(), 0.01)
			}
		})
	}
}

func TestLoadRules_UnknownDomain(t *testing.T) {
	loader := NewLoader()

	_, err := loader.LoadRules(context.Background(), "astronaut")
	require.Error(t, err)

	var unknown *UnknownDomainError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "astronaut", unknown.Domain)
	assert.Equal(t, `no rules available for domain "astronaut"`, err.Error())
}

func TestLoadRules_NormalizesDomainID(t *testing.T) {
	rules, err := NewLoader().LoadRules(context.Background(), "  Web-Developer ")
	require.NoError(t, err)
	assert.Equal(t, DomainWebDeveloper, rules.Domain)
}

func TestLoadRules_Cache(t *testing.T) {
	loader := NewLoader()
	ctx := context.Background()

	first, err := loader.LoadRules(ctx, DomainWebDeveloper)
	require.NoError(t, err)
	second, err := loader.LoadRules(ctx, DomainWebDeveloper)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, loader.Cache().Len())

	loader.ClearCache()
	assert.Equal(t, 0, loader.Cache().Len())

	third, err := loader.LoadRules(ctx, DomainWebDeveloper)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, first, third)
}

func TestLoadRules_LegacyTransformPreservesSkillCount(t *testing.T) {
	rules, err := NewLoader().LoadRules(context.Background(), DomainCyberSecurity)
	require.NoError(t, err)

	for _, level := range types.Levels() {
		lr := rules.ForLevel(level)
		assert.Len(t, lr.Rules.RequiredSkills.Skills, 6, "criticalSkills count for %s", level)
		assert.Len(t, lr.Rules.NiceToHaveSkills.Skills, 6, "preferredSkills count for %s", level)
		assert.Equal(t, types.ImportanceCritical, lr.Rules.RequiredSkills.Skills[0].Importance)
		assert.Equal(t, 1.0, lr.Rules.RequiredSkills.Skills[0].Weight)
		assert.Len(t, lr.Rules.RedFlags.Flags, 2)
		assert.Equal(t, 0.35, lr.OverallScoringWeights.KeywordMatch)
	}
	assert.Equal(t, rules.ExperienceLevels.EntryLevel, rules.ExperienceLevels.SeniorLevel)
}

func TestLoadRules_LegacyTransformFromOverride(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "web-developer.rules.json", `{"ruleEngine": {"domains": {"web-developer": {
		"criticalSkills": ["HTML", "CSS", "JavaScript", {"name": "React", "aliases": ["reactjs"]}],
		"actionVerbs": ["built", {"word": "shipped", "strength": "very-high"}]
	}}}}`)

	rules, err := NewLoader(WithDir(dir)).LoadRules(context.Background(), DomainWebDeveloper)
	require.NoError(t, err)

	mid := rules.ForLevel(types.LevelMid)
	assert.Len(t, mid.Rules.RequiredSkills.Skills, 4)
	assert.Equal(t, []string{"react", "reactjs"}, mid.Rules.RequiredSkills.Skills[3].Terms())
	assert.Equal(t, types.StrengthMedium, mid.Rules.PowerWords.Words[0].Strength)
	assert.Equal(t, types.StrengthVeryHigh, mid.Rules.PowerWords.Words[1].Strength)
	assert.Equal(t, types.DefaultScoringWeights(), mid.OverallScoringWeights)
}

func TestLoadRules_FlatBundleInheritsMidLevel(t *testing.T) {
	rules, err := NewLoader().LoadRules(context.Background(), DomainDataScientist)
	require.NoError(t, err)

	mid := rules.ForLevel(types.LevelMid)
	senior := rules.ForLevel(types.LevelSenior)
	entry := rules.ForLevel(types.LevelEntry)

	assert.Equal(t, mid.Rules, senior.Rules)
	assert.Equal(t, mid.OverallScoringWeights, senior.OverallScoringWeights)
	assert.NotEqual(t, mid.Rules.RequiredSkills.Skills, entry.Rules.RequiredSkills.Skills)
}

func TestLoadRules_YAMLBundleUsesDefaultWeights(t *testing.T) {
	rules, err := NewLoader().LoadRules(context.Background(), DomainDevOpsEngineer)
	require.NoError(t, err)

	for _, level := range types.Levels() {
		lr := rules.ForLevel(level)
		assert.Equal(t, types.DefaultScoringWeights(), lr.OverallScoringWeights)
		assert.Equal(t, 8, lr.Rules.PowerWords.TargetCount)
		assert.Equal(t, 4, lr.Rules.MetricsFramework.TargetCount)
	}
}

func TestLoadRules_ExplicitZeroWeightsKept(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "web-developer.rules.json", `{"rules": {"experienceLevels": {"midLevel": {
		"rules": {"requiredSkills": {"skills": [{"name": "React"}]}},
		"overallScoringWeights": {"keywordMatch": 0, "formatCompliance": 0, "metricsPresence": 0, "powerWordUsage": 0, "skillRelevance": 0}
	}}}}`)

	rules, err := NewLoader(WithDir(dir)).LoadRules(context.Background(), DomainWebDeveloper)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rules.ForLevel(types.LevelMid).OverallScoringWeights.Sum())
}

func TestLoadRules_YAMLOverrideTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "cyber-security.rules.yaml", `
cyberSecurityRules:
  displayName: Blue Team Analyst
  experienceLevels:
    entryLevel:
      rules:
        requiredSkills:
          skills:
            - name: Splunk
              importance: high
`)

	rules, err := NewLoader(WithDir(dir)).LoadRules(context.Background(), DomainCyberSecurity)
	require.NoError(t, err)

	assert.Equal(t, "Blue Team Analyst", rules.DisplayName)
	assert.Equal(t, DomainCyberSecurity, rules.Domain)
	skills := rules.ForLevel(types.LevelSenior).Rules.RequiredSkills.Skills
	require.Len(t, skills, 1)
	assert.Equal(t, "Splunk", skills[0].Name)
	assert.Equal(t, 0.8, skills[0].Weight)
}

func TestLoadRules_OverrideDirFallsBackToEmbedded(t *testing.T) {
	rules, err := NewLoader(WithDir(t.TempDir())).LoadRules(context.Background(), DomainAIMLEngineer)
	require.NoError(t, err)
	assert.Equal(t, "AI/ML Engineer", rules.DisplayName)
}

func TestLoadRules_MalformedBundle(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{
			name:    "invalid JSON",
			file:    "web-developer.rules.json",
			content: `{ not json`,
			errMsg:  "schema",
		},
		{
			name:    "invalid YAML",
			file:    "web-developer.rules.yaml",
			content: "rules: [unclosed",
			errMsg:  "invalid YAML",
		},
		{
			name:    "schema violation",
			file:    "web-developer.rules.json",
			content: `{"rules": {"experienceLevels": {"midLevel": {"rules": {"requiredSkills": {"skills": [{"weight": 2}]}}}}}}`,
			errMsg:  "schema",
		},
		{
			name:    "bad red flag pattern",
			file:    "web-developer.rules.json",
			content: `{"rules": {"experienceLevels": {"midLevel": {"rules": {"redFlags": {"flags": [{"id": "RF_X", "pattern": "(unclosed"}]}}}}}}`,
			errMsg:  "invalid pattern",
		},
		{
			name:    "domain missing from legacy bundle",
			file:    "web-developer.rules.json",
			content: `{"ruleEngine": {"domains": {"cyber-security": {"criticalSkills": ["Linux"]}}}}`,
			errMsg:  "unrecognized bundle shape",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeBundle(t, dir, tt.file, tt.content)

			_, err := NewLoader(WithDir(dir)).LoadRules(context.Background(), DomainWebDeveloper)
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "expected LoadError, got %T", err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Contains(t, err.Error(), "expected web-developer.rules.json or web-developer.rules.yaml")
		})
	}
}

func TestLoadRules_ShapeDetectorOrder(t *testing.T) {
	loader := NewLoader(WithShapeDetectors(LegacyNestedShape{}))

	_, err := loader.LoadRules(context.Background(), DomainWebDeveloper)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized bundle shape")

	rules, err := loader.LoadRules(context.Background(), DomainCyberSecurity)
	require.NoError(t, err)
	assert.NotNil(t, rules.ForLevel(types.LevelMid))
}

func TestLoadRules_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().LoadRules(ctx, DomainWebDeveloper)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreload(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.Preload(context.Background()))
	assert.Equal(t, len(AvailableDomains()), loader.Cache().Len())
}

func TestPreload_FailsOnUnknownDomain(t *testing.T) {
	loader := NewLoader()
	err := loader.Preload(context.Background(), DomainWebDeveloper, "astronaut")

	var unknown *UnknownDomainError
	assert.True(t, errors.As(err, &unknown))
}

func TestSharedCache(t *testing.T) {
	cache := NewCache()
	a := NewLoader(WithCache(cache))
	b := NewLoader(WithCache(cache))

	first, err := a.LoadRules(context.Background(), DomainDataScientist)
	require.NoError(t, err)
	second, err := b.LoadRules(context.Background(), DomainDataScientist)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestPackageLevelLoader(t *testing.T) {
	ClearCache()
	rules, err := LoadRules(context.Background(), DomainWebDeveloper)
	require.NoError(t, err)
	assert.Equal(t, 1, Default().Cache().Len())
	assert.Equal(t, "Web Developer", rules.DisplayName)
	ClearCache()
}
