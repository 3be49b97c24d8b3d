// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/placement-prep/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// writeList writes up to limit items as bullets, followed by an overflow line.
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintJobContext outputs a human-readable summary of the parsed job posting.
func (p *Printer) PrintJobContext(job *types.JobContext) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.RoleType))
	sb.WriteString("\n")

	if len(job.RequiredSkills) > 0 {
		sb.WriteString("Required Skills:\n")
		writeList(&sb, job.RequiredSkills, maxItemsToShow)
		sb.WriteString("\n")
	}

	if len(job.PreferredSkills) > 0 {
		sb.WriteString("Preferred Skills:\n")
		writeList(&sb, job.PreferredSkills, 3)
	}

	p.printBox("PARSED JOB CONTEXT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSScore outputs the category scores of a legacy weighted score.
func (p *Printer) PrintATSScore(score *types.ATSScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %d/100 (%s)\n\n", score.OverallScore, score.Strategy))
	for _, b := range score.Breakdown {
		sb.WriteString(fmt.Sprintf("%-18s %3d  x%.2f\n", b.Category, b.Score, b.Weight))
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerdict outputs the verdict, the component scores and the failed rules.
func (p *Printer) PrintVerdict(result *types.VerdictResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Verdict:  %s (%d/100)\n\n", strings.ToUpper(string(result.Verdict)), result.FinalScore))
	sb.WriteString(fmt.Sprintf("ATS:      %.1f\n", result.ATSScore))
	sb.WriteString(fmt.Sprintf("HR:       %.1f\n", result.HRScore))
	if result.JDScore != nil {
		sb.WriteString(fmt.Sprintf("JD:       %.1f\n", *result.JDScore))
	}
	sb.WriteString(fmt.Sprintf("Penalty:  -%.1f\n", result.Penalty))

	failed := failedRules(result.Evaluations)
	if len(failed) > 0 {
		sb.WriteString(fmt.Sprintf("\nFailed %d rules:\n", len(failed)))
		writeList(&sb, failed, maxItemsToShow)
	}

	p.printBox("RESUME VERDICT", strings.TrimSuffix(sb.String(), "\n"))
}

func failedRules(evals []types.RuleEvaluation) []string {
	var failed []string
	for _, e := range evals {
		if !e.Passed {
			failed = append(failed, fmt.Sprintf("%s %s", e.RuleID, e.Description))
		}
	}
	return failed
}

// PrintEvaluations outputs every rule result with a pass/fail marker.
func (p *Printer) PrintEvaluations(evals []types.RuleEvaluation) {
	if len(evals) == 0 {
		return
	}

	var sb strings.Builder
	passed := 0
	for _, e := range evals {
		mark := "✗"
		if e.Passed {
			mark = "✓"
			passed++
		}
		sb.WriteString(fmt.Sprintf("%s %-7s %s\n", mark, e.RuleID, e.Description))
	}
	sb.WriteString(fmt.Sprintf("\n%d/%d rules passed", passed, len(evals)))

	p.printBox("RULE EVALUATIONS", sb.String())
}

// PrintSuggestions outputs suggestions with their severity.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO SUGGESTIONS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d suggestions:\n\n", len(suggestions)))

	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("⚠ [%s] %s\n", s.Severity, s.Message))
		sb.WriteString(fmt.Sprintf("  %s\n", s.Suggestion))
		if s.ApplySuggestion != "" {
			sb.WriteString(fmt.Sprintf("  → %s\n", s.ApplySuggestion))
		}
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}
