package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/placement-prep/internal/schemas"
	embedded "github.com/jonathan/placement-prep/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range embedded.Names() {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := embedded.Read(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)

			_, hasSchema := schemaObj["$schema"]
			_, hasType := schemaObj["type"]
			assert.True(t, hasSchema && hasType, "schema should declare $schema and type")
		})
	}
}

func TestRuleBundleSchema_AcceptsBothShapes(t *testing.T) {
	tests := []struct {
		name    string
		bundle  string
		wantErr bool
	}{
		{
			name: "flat keyed bundle",
			bundle: `{"webDeveloperRules": {"domain": "web-developer", "experienceLevels": {
				"midLevel": {"rules": {"requiredSkills": {"skills": [{"name": "React", "importance": "critical"}]}}}
			}}}`,
		},
		{
			name: "legacy nested bundle",
			bundle: `{"ruleEngine": {"domains": {"cyber-security": {
				"criticalSkills": ["Networking", {"name": "SIEM", "importance": "high"}],
				"actionVerbs": ["secured", {"word": "hardened", "strength": "very-high"}]
			}}}}`,
		},
		{
			name:    "empty document",
			bundle:  `{}`,
			wantErr: true,
		},
		{
			name:    "flat bundle without experience levels",
			bundle:  `{"rules": {"domain": "web-developer"}}`,
			wantErr: true,
		},
		{
			name: "skill without name",
			bundle: `{"rules": {"experienceLevels": {
				"midLevel": {"rules": {"requiredSkills": {"skills": [{"importance": "critical"}]}}}
			}}}`,
			wantErr: true,
		},
		{
			name: "red flag without pattern",
			bundle: `{"ruleEngine": {"domains": {"cyber-security": {
				"redFlags": [{"id": "RF_X"}]
			}}}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateDocument(embedded.RuleBundle, []byte(tt.bundle))
			if tt.wantErr {
				require.Error(t, err)
				_, ok := err.(*schemas.ValidationError)
				assert.True(t, ok, "error should be ValidationError, got %T", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJobContextSchema(t *testing.T) {
	assert.NoError(t, schemas.ValidateDocument(embedded.JobContext, []byte(`{"requiredSkills": ["react", "node"]}`)))
	assert.Error(t, schemas.ValidateDocument(embedded.JobContext, []byte(`{"title": "SDE"}`)))
	assert.Error(t, schemas.ValidateDocument(embedded.JobContext, []byte(`{"requiredSkills": [""]}`)))
}

func TestResumeSchema(t *testing.T) {
	valid := `{"personalInfo": {"fullName": "Asha Rao"}, "skills": [{"category": "Languages", "items": ["Go"]}], "experiences": null}`
	assert.NoError(t, schemas.ValidateDocument(embedded.Resume, []byte(valid)))

	invalid := `{"personalInfo": {"fullName": 42}}`
	assert.Error(t, schemas.ValidateDocument(embedded.Resume, []byte(invalid)))
}
