//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_Validate(t *testing.T) {
	tests := []struct {
		name    string
		resume  Resume
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid resume",
			resume: Resume{
				PersonalInfo: PersonalInfo{
					FullName: "Asha Rao",
					Email:    "asha.rao@example.com",
					GitHub:   "https://github.com/asharao",
				},
				Projects: []Project{{Name: "Tracker", Link: "https://example.com/tracker"}},
			},
			wantErr: false,
		},
		{
			name:    "empty resume is valid",
			resume:  Resume{},
			wantErr: false,
		},
		{
			name: "malformed email",
			resume: Resume{
				PersonalInfo: PersonalInfo{Email: "not-an-email"},
			},
			wantErr: true,
			errMsg:  "email",
		},
		{
			name: "malformed github url",
			resume: Resume{
				PersonalInfo: PersonalInfo{GitHub: "github dot com"},
			},
			wantErr: true,
			errMsg:  "url",
		},
		{
			name: "certification without name",
			resume: Resume{
				Certifications: []Certification{{Issuer: "AWS"}},
			},
			wantErr: true,
			errMsg:  "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resume.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResume_JSONKeys(t *testing.T) {
	resume := Resume{
		PersonalInfo: PersonalInfo{FullName: "Asha Rao"},
		Skills:       []SkillGroup{{Category: "Languages", Items: []string{"Go"}}},
	}

	data, err := json.Marshal(resume)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"personalInfo"`)
	assert.Contains(t, s, `"fullName":"Asha Rao"`)
	assert.NotContains(t, s, `"publications"`, "optional sections are omitted when empty")
}

func TestJobContext_Validate(t *testing.T) {
	valid := JobContext{RequiredSkills: []string{"react"}, PreferredSkills: []string{}}
	assert.NoError(t, valid.Validate())

	invalid := JobContext{RequiredSkills: []string{"react", ""}}
	assert.Error(t, invalid.Validate())
}
