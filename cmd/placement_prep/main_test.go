package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-prep/internal/types"
)

// execute runs the CLI in-process and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDomainsCommand(t *testing.T) {
	out, err := execute(t, "domains")
	require.NoError(t, err)
	assert.Contains(t, out, "web-developer\n")
	assert.Contains(t, out, "devops-engineer\n")

	out, err = execute(t, "domains", "--json")
	require.NoError(t, err)
	var resp map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp["domains"], 5)
}

func TestRulesCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{name: "whole bundle", args: []string{"rules"}, want: `"entryLevel"`},
		{name: "required skills", args: []string{"rules", "--section", "required-skills"}, want: "JavaScript"},
		{name: "other domain", args: []string{"rules", "-d", "data-scientist", "-s", "required-skills"}, want: "Python"},
		{name: "unknown section", args: []string{"rules", "--section", "hobbies"}, wantErr: "unknown section"},
		{name: "unknown domain", args: []string{"rules", "--domain", "chef"}, wantErr: "domain"},
		{name: "invalid level", args: []string{"rules", "--level", "guru"}, wantErr: "level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestScoreCommand_Verdict(t *testing.T) {
	out, err := execute(t, "score", "testdata/resume.json")
	require.NoError(t, err)

	var result types.VerdictResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "verdict", result.Strategy)
	assert.GreaterOrEqual(t, result.FinalScore, 0)
	assert.LessOrEqual(t, result.FinalScore, 100)
	assert.NotEmpty(t, result.Evaluations)
	assert.Nil(t, result.JDScore)
}

func TestScoreCommand_WithJob(t *testing.T) {
	out, err := execute(t, "score", "testdata/resume.json", "--job", "testdata/job.json")
	require.NoError(t, err)

	var result types.VerdictResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.NotNil(t, result.JDScore)
}

func TestScoreCommand_Legacy(t *testing.T) {
	out, err := execute(t, "score", "--strategy", "legacy", "testdata/resume.json")
	require.NoError(t, err)

	var score types.ATSScore
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.Equal(t, "legacy-weighted", score.Strategy)
}

func TestScoreCommand_Batch(t *testing.T) {
	out, err := execute(t, "score", "testdata/resume.json", "testdata/sparse_resume.json")
	require.NoError(t, err)

	var batch []struct {
		Path   string              `json:"path"`
		Result types.VerdictResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &batch))
	require.Len(t, batch, 2)
	assert.Equal(t, "testdata/resume.json", batch[0].Path)
	assert.Equal(t, "testdata/sparse_resume.json", batch[1].Path)
	assert.Greater(t, batch[0].Result.FinalScore, batch[1].Result.FinalScore)
}

func TestScoreCommand_Deterministic(t *testing.T) {
	first, err := execute(t, "score", "testdata/resume.json")
	require.NoError(t, err)
	second, err := execute(t, "score", "testdata/resume.json")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScoreCommand_Errors(t *testing.T) {
	invalid := writeTemp(t, "invalid.json", `{"skills": 3}`)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no files", args: []string{"score"}, wantErr: "arg"},
		{name: "missing file", args: []string{"score", "testdata/nope.json"}, wantErr: "failed to read resume file"},
		{name: "schema violation", args: []string{"score", invalid}, wantErr: "invalid resume"},
		{name: "bad strategy", args: []string{"score", "--strategy", "random", "testdata/resume.json"}, wantErr: "unknown strategy"},
		{name: "missing job", args: []string{"score", "--job", "testdata/nope.json", "testdata/resume.json"}, wantErr: "job context"},
		{name: "one bad file in batch", args: []string{"score", "testdata/resume.json", invalid}, wantErr: "invalid resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigFile(t *testing.T) {
	out, err := execute(t, "--config", "testdata/config.yaml", "score", "testdata/resume.json")
	require.NoError(t, err)

	var score types.ATSScore
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.Equal(t, "legacy-weighted", score.Strategy)

	// Flags win over the file
	out, err = execute(t, "--config", "testdata/config.yaml", "score", "--strategy", "verdict", "testdata/resume.json")
	require.NoError(t, err)
	assert.Contains(t, out, `"strategy": "verdict"`)

	_, err = execute(t, "--config", "testdata/missing.yaml", "domains")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestEvaluateCommand(t *testing.T) {
	out, err := execute(t, "evaluate", "testdata/resume.json", "--level", "entryLevel")
	require.NoError(t, err)

	var report struct {
		Domain      string                 `json:"domain"`
		Level       string                 `json:"level"`
		Passed      int                    `json:"passed"`
		Total       int                    `json:"total"`
		Evaluations []types.RuleEvaluation `json:"evaluations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "web-developer", report.Domain)
	assert.Equal(t, "entryLevel", report.Level)
	assert.Equal(t, len(report.Evaluations), report.Total)
	assert.LessOrEqual(t, report.Passed, report.Total)

	_, err = execute(t, "evaluate")
	assert.Error(t, err)
}

func TestSuggestCommand(t *testing.T) {
	t.Run("field", func(t *testing.T) {
		out, err := execute(t, "suggest", "--section", "experience", "--field", "description",
			"--value", "Responsible for developing websites")
		require.NoError(t, err)

		var resp map[string][]types.Suggestion
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.NotEmpty(t, resp["suggestions"])
	})

	t.Run("resume", func(t *testing.T) {
		out, err := execute(t, "suggest", "--resume", "testdata/sparse_resume.json")
		require.NoError(t, err)

		var resp map[string][]types.Suggestion
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		require.NotEmpty(t, resp["suggestions"])
		assert.Equal(t, types.SeverityCritical, resp["suggestions"][0].Severity)
	})

	t.Run("unrouted field", func(t *testing.T) {
		out, err := execute(t, "suggest", "--section", "personal", "--field", "location", "--value", "Bengaluru")
		require.NoError(t, err)
		assert.JSONEq(t, `{"suggestions": []}`, out)
	})

	errCases := []struct {
		name string
		args []string
	}{
		{name: "no mode", args: []string{"suggest"}},
		{name: "both modes", args: []string{"suggest", "--resume", "testdata/resume.json", "--section", "summary", "--field", "summary"}},
		{name: "section without field", args: []string{"suggest", "--section", "summary"}},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestIngestJobCommand(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "ingest-job", "--text-file", "testdata/posting.txt", "--out", outDir)
	require.NoError(t, err)

	var job types.JobContext
	require.NoError(t, json.Unmarshal([]byte(out), &job))
	assert.Equal(t, "Frontend Developer", job.Title)
	assert.Contains(t, job.RequiredSkills, "React")
	assert.Contains(t, job.PreferredSkills, "TypeScript")

	for _, name := range []string{cleanedTextFile, metadataFile, jobContextFile} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	meta, err := os.ReadFile(filepath.Join(outDir, metadataFile))
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"hash"`)
}

func TestIngestJobCommand_Errors(t *testing.T) {
	empty := writeTemp(t, "empty.txt", "   \n\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "no source", args: []string{"ingest-job"}},
		{name: "both sources", args: []string{"ingest-job", "--text-file", "testdata/posting.txt", "--url", "https://example.com/job"}},
		{name: "missing file", args: []string{"ingest-job", "--text-file", "testdata/nope.txt"}},
		{name: "empty posting", args: []string{"ingest-job", "--text-file", empty}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestVerboseKeepsJSONOnStdout(t *testing.T) {
	for _, args := range [][]string{
		{"-v", "score", "testdata/resume.json", "testdata/sparse_resume.json"},
		{"-v", "score", "--strategy", "legacy", "testdata/resume.json"},
		{"-v", "evaluate", "testdata/resume.json"},
		{"-v", "suggest", "--resume", "testdata/resume.json"},
	} {
		out, err := execute(t, args...)
		require.NoError(t, err, args)
		assert.True(t, json.Valid([]byte(out)), args)
	}
}
