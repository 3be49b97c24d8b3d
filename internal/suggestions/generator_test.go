package suggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-prep/internal/types"
)

func TestSuggestField_Routing(t *testing.T) {
	rules := testRules()

	tests := []struct {
		name    string
		text    string
		field   string
		section string
		want    []string // expected messages, in order
	}{
		{
			name:    "experience description runs verb, metrics and passive checks",
			text:    "Responsible for the website which was redesigned",
			field:   "description",
			section: "experience",
			want: []string{
				"\"responsible for\" is a weak opener that hides your contribution",
				"No measurable result found",
				"Passive phrasing \"was redesigned\" hides who did the work",
			},
		},
		{
			name:    "project description skips passive voice",
			text:    "The app was built in a weekend",
			field:   "description",
			section: "projects",
			want:    []string{"No measurable result found"},
		},
		{
			name:    "summary",
			text:    "Passionate about clean code",
			field:   "summary",
			section: "personal",
			want: []string{
				"Your summary does not mention any core skills for your target roles",
				"Your summary does not state your experience level",
				"Summary is short (4 words)",
			},
		},
		{
			name:    "case and whitespace are normalised",
			text:    "bad@",
			field:   " Email ",
			section: "PERSONAL",
			want:    []string{"Email address looks malformed"},
		},
		{
			name:    "unknown pair",
			text:    "Responsible for everything",
			field:   "title",
			section: "experience",
		},
		{
			name:    "blank text",
			text:    "   ",
			field:   "description",
			section: "experience",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestField(tt.text, tt.field, tt.section, rules)
			messages := make([]string, 0, len(got))
			for _, s := range got {
				messages = append(messages, s.Message)
			}
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, messages)
		})
	}
}

func TestSuggestField_SetsSectionAndField(t *testing.T) {
	got := SuggestField("React", "items", "skills", testRules())
	require.Len(t, got, 1)
	assert.Equal(t, SectionSkills, got[0].Section)
	assert.Equal(t, FieldItems, got[0].Field)
}

func TestSuggestField_Deterministic(t *testing.T) {
	text := "- Worked on the API\n- Helped the team\n- Worked on the API"
	first := SuggestField(text, "description", "experience", testRules())
	second := SuggestField(text, "description", "experience", testRules())
	assert.Equal(t, first, second)

	messages := map[string]int{}
	for _, s := range first {
		messages[s.Message]++
	}
	for msg, n := range messages {
		assert.Equal(t, 1, n, "duplicate message %q", msg)
	}
}

func TestGenerator_DomainLabel(t *testing.T) {
	got := New(testRules(), "Web Developer").Field("React", "items", "skills")
	require.Len(t, got, 1)
	assert.Equal(t, "Missing critical skills for Web Developer roles: JavaScript", got[0].Message)
}

func TestDedup(t *testing.T) {
	in := []types.Suggestion{
		{Message: "a", Severity: types.SeverityHigh},
		{Message: "b"},
		{Message: "a", Severity: types.SeverityLow},
	}
	got := Dedup(in)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Message)
	assert.Equal(t, types.SeverityHigh, got[0].Severity, "first occurrence wins")
	assert.Equal(t, "b", got[1].Message)
	assert.Nil(t, Dedup(nil))
}

func TestRoutes(t *testing.T) {
	assert.Equal(t, []string{
		"experience.achievements",
		"experience.description",
		"personal.email",
		"personal.summary",
		"projects.description",
		"skills.items",
	}, Routes())
}
