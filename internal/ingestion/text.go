// Package ingestion turns job postings (files, raw text or URLs) into a JobContext.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	multiSpace  = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	bulletStart = regexp.MustCompile(`^([-*•·▪◦]|\d+[.)])\s+`)
)

// CleanText normalizes line endings and whitespace while keeping headings, bullets and paragraph breaks.
// Output is deterministic for a given input.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	if m := bulletStart.FindString(trimmed); m != "" {
		marker := strings.TrimSpace(m)
		if marker == "*" || marker == "•" || marker == "·" || marker == "▪" || marker == "◦" {
			marker = "-"
		}
		return marker + " " + multiSpace.ReplaceAllString(trimmed[len(m):], " ")
	}
	return multiSpace.ReplaceAllString(trimmed, " ")
}

// IngestFile reads a posting from disk and cleans it
func IngestFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleaned := CleanText(string(content))
	return cleaned, NewMetadata(cleaned, ""), nil
}
