// Package parsing turns a structured resume into the text views the evaluators match against.
package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/placement-prep/internal/types"
)

// ExtractText builds the lowercase corpus for a resume.
// No tokenization happens, so matching against it is substring based ("java" also matches "javascript").
func ExtractText(resume *types.Resume) string {
	if resume == nil {
		return ""
	}

	parts := []string{resume.PersonalInfo.FullName, resume.PersonalInfo.Summary}
	for _, exp := range resume.Experiences {
		parts = append(parts, exp.Company, exp.Position, exp.Description)
		parts = append(parts, exp.Achievements...)
	}
	for _, proj := range resume.Projects {
		parts = append(parts, proj.Name, proj.Description)
	}
	parts = append(parts, SkillTokens(resume)...)
	for _, edu := range resume.Education {
		parts = append(parts, edu.Institution, edu.Degree, edu.Field)
	}

	return joinLower(parts)
}

// ExperienceText is the lowercase text of experience and project entries.
// A declared skill that shows up here is backed by evidence.
func ExperienceText(resume *types.Resume) string {
	if resume == nil {
		return ""
	}

	var parts []string
	for _, exp := range resume.Experiences {
		parts = append(parts, exp.Position, exp.Description)
		parts = append(parts, exp.Achievements...)
	}
	for _, proj := range resume.Projects {
		parts = append(parts, proj.Name, proj.Description)
		parts = append(parts, proj.Technologies...)
	}

	return joinLower(parts)
}

// SkillTokens splits every skill item on commas and returns the trimmed, de-duplicated tokens in order.
// Duplicates are detected on the canonical skill name, so "JS" and "JavaScript" count once.
func SkillTokens(resume *types.Resume) []string {
	if resume == nil {
		return nil
	}

	var tokens []string
	seen := make(map[string]bool)
	for _, group := range resume.Skills {
		for _, item := range group.Items {
			for _, token := range strings.Split(item, ",") {
				token = strings.TrimSpace(token)
				if token == "" {
					continue
				}
				key := SkillKey(token)
				if seen[key] {
					continue
				}
				seen[key] = true
				tokens = append(tokens, token)
			}
		}
	}
	return tokens
}

// Bullets returns every bullet-like line from experience descriptions, achievements and project descriptions
func Bullets(resume *types.Resume) []string {
	if resume == nil {
		return nil
	}

	var bullets []string
	for _, exp := range resume.Experiences {
		bullets = append(bullets, SplitBullets(exp.Description)...)
		for _, achievement := range exp.Achievements {
			bullets = append(bullets, SplitBullets(achievement)...)
		}
	}
	for _, proj := range resume.Projects {
		bullets = append(bullets, SplitBullets(proj.Description)...)
	}
	return bullets
}

// SplitBullets splits free text into bullets on newlines and strips leading bullet markers
func SplitBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeftFunc(strings.TrimSpace(line), isBulletMarker)
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

func isBulletMarker(r rune) bool {
	switch r {
	case '-', '*', '•', '·', '▪', '‣', '◦', '>':
		return true
	}
	return unicode.IsSpace(r)
}

// WordCount counts whitespace separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ContainsSkill reports whether the lowercase corpus contains the skill name or any alias
func ContainsSkill(corpus string, skill types.SkillRule) bool {
	for _, term := range skill.Terms() {
		if strings.Contains(corpus, term) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether the lowercase corpus contains any of the terms
func ContainsAny(corpus string, terms ...string) bool {
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(corpus, term) {
			return true
		}
	}
	return false
}

// FirstWords returns the lowercase first n words of text with trailing punctuation removed
func FirstWords(text string, n int) string {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) > n {
		fields = fields[:n]
	}
	for i, f := range fields {
		fields[i] = strings.TrimFunc(f, func(r rune) bool { return unicode.IsPunct(r) })
	}
	return strings.Join(fields, " ")
}

func joinLower(parts []string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " "))
}
