package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-prep/internal/rules"
	"github.com/jonathan/placement-prep/internal/types"
)

func TestMetricDetector_Count(t *testing.T) {
	detector := NewMetricDetector([]string{"users", "hours", "ms", "k"})

	tests := []struct {
		name string
		text string
		want int
	}{
		{"percentage", "Led a team of 5 engineers, improving load time by 40%", 1},
		{"decimal percentage", "raised accuracy by 12.5 %", 1},
		{"currency", "Saved ₹2 lakh and $5k in hosting", 2},
		{"multiplier", "made search 3x faster", 1},
		{"units", "served 2,000+ users and saved 10 hours", 2},
		{"singular units", "onboarded 1 user within 1 hour", 2},
		{"unit is case insensitive", "Cut latency to 80 MS", 1},
		{"plain numbers", "version 2 shipped in 2023", 0},
		{"no numbers", "built a web app", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.Count(tt.text))
			assert.Equal(t, tt.want > 0, detector.HasMetric(tt.text))
		})
	}
}

func TestMetricDetector_EmbeddedDomainsKeepDefaultUnits(t *testing.T) {
	loader := rules.NewLoader()

	for _, domain := range rules.AvailableDomains() {
		t.Run(domain, func(t *testing.T) {
			domainRules, err := loader.LoadRules(context.Background(), domain)
			require.NoError(t, err)

			for _, level := range types.Levels() {
				units := domainRules.ForLevel(level).Rules.MetricsFramework.Units
				detector := NewMetricDetector(units)
				assert.True(t, detector.HasMetric("served 5,000 users"), level)
				assert.True(t, detector.HasMetric("saved 12 hours"), level)
				assert.True(t, detector.HasMetric("closed 1 ticket in 1 hour"), level)
			}
		})
	}
}

func TestNewMetricDetector_Cached(t *testing.T) {
	a := NewMetricDetector([]string{"users", "hours"})
	b := NewMetricDetector([]string{" Hours ", "users"})
	assert.Same(t, a, b)
}

func TestMetricDetector_NoUnits(t *testing.T) {
	detector := NewMetricDetector(nil)
	assert.Equal(t, 1, detector.Count("grew signups 20%"))
	assert.Equal(t, 0, detector.Count("served 300 users"))
}

func TestCountWord(t *testing.T) {
	assert.Equal(t, 2, CountWord("Led the team, then led again; misled no one", "led"))
	assert.Equal(t, 1, CountWord("was responsible for testing", "responsible for"))
	assert.Equal(t, 0, CountWord("anything", ""))
}

func TestIndexWord(t *testing.T) {
	assert.Equal(t, 10, IndexWord("misled, i led", "led"))
	assert.Equal(t, -1, IndexWord("misled", "led"))
	assert.Equal(t, 0, IndexWord("led", "led"))
}

func TestLeadingWeakVerb(t *testing.T) {
	weak := []string{"responsible for", "worked on", "helped"}

	verb, ok := LeadingWeakVerb("Responsible for developing websites", weak)
	assert.True(t, ok)
	assert.Equal(t, "responsible for", verb)

	_, ok = LeadingWeakVerb("Helpedesk migration", weak)
	assert.False(t, ok, "prefix must end on a word boundary")

	_, ok = LeadingWeakVerb("Built and helped", weak)
	assert.False(t, ok)
}

func TestFindWeakVerb(t *testing.T) {
	verb, idx, ok := FindWeakVerb("Developed and helped maintain the API", []string{"worked on", "helped"})
	assert.True(t, ok)
	assert.Equal(t, "helped", verb)
	assert.Equal(t, 14, idx)

	_, _, ok = FindWeakVerb("Built the API", []string{"helped"})
	assert.False(t, ok)
}

func TestFindWeakVerb_SkipsPassive(t *testing.T) {
	weak := []string{"used", "made", "responsible for"}

	tests := []struct {
		name string
		text string
		verb string
		idx  int
		ok   bool
	}{
		{name: "participle followed by by", text: "Built an API used by 5,000 users", ok: false},
		{name: "after a form of be", text: "Shipped a library that was made reusable", ok: false},
		{name: "passive then active", text: "Built an API used by students and used Redis for caching", verb: "used", idx: 34, ok: true},
		{name: "active mid-sentence", text: "Designed the schema and made the migration plan", verb: "made", idx: 24, ok: true},
		{name: "multi-word verb after be", text: "I was responsible for testing", verb: "responsible for", idx: 6, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verb, idx, ok := FindWeakVerb(tt.text, weak)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.verb, verb)
				assert.Equal(t, tt.idx, idx)
			}
		})
	}
}

func TestWeakBulletRatio(t *testing.T) {
	weak := []string{"worked on", "helped"}
	assert.Equal(t, 0.0, WeakBulletRatio(nil, weak))
	assert.Equal(t, 0.5, WeakBulletRatio([]string{"Worked on X", "Built Y"}, weak))
}

func TestStrongVerbOccurrencesAndDistinct(t *testing.T) {
	words := []types.PowerWord{
		{Word: "led", Strength: types.StrengthVeryHigh},
		{Word: "built", Strength: types.StrengthHigh},
		{Word: "used", Strength: types.StrengthMedium},
	}
	text := "built x, built y, led z, used w"

	assert.Equal(t, 3, StrongVerbOccurrences(text, words))
	assert.Equal(t, []string{"led", "built", "used"}, DistinctPowerWords(text, words))
}

func TestStacks(t *testing.T) {
	assert.Len(t, Stacks(), 11)

	mern := Stack{Name: "MERN", Members: []string{"mongodb", "express", "react", "node"}}
	assert.True(t, mern.Fits("mongodb express react"))
	assert.False(t, mern.Fits("mongodb react"))
	assert.False(t, Stack{Name: "empty"}.Fits("anything"))

	assert.Contains(t, StacksIn("elasticsearch, logstash and kibana"), "ELK")
	assert.Empty(t, StacksIn("cobol"))
	assert.Contains(t, StackMembers(), "kibana")
}

func TestDetectRoleType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Senior Data Scientist", RoleData},
		{"Backend Engineer, Go services", RoleBackend},
		{"Full-Stack Developer", RoleFullStack},
		{"Frontend Engineer (React)", RoleFrontend},
		{"Site Reliability Engineer", RoleDevOps},
		{"Android Developer", RoleMobile},
		{"Chef", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectRoleType(tt.text))
		})
	}
	assert.Len(t, RoleTypes(), 8)
	assert.Nil(t, RoleKeywords("astronaut"))
}
