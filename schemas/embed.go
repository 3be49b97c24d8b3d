// Package schemas embeds the JSON Schema documents for the structured inputs the engine accepts:
// resumes, job contexts and rule bundles.
package schemas

import "embed"

// Schema file names
const (
	Resume     = "resume.schema.json"
	JobContext = "job_context.schema.json"
	RuleBundle = "rule_bundle.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of an embedded schema
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists every embedded schema
func Names() []string {
	return []string{Resume, JobContext, RuleBundle}
}
