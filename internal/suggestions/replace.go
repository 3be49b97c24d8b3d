package suggestions

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/placement-prep/internal/evaluation"
	"github.com/jonathan/placement-prep/internal/types"
)

// fallbackStrongVerb is proposed when the rule set has no strong power words
const fallbackStrongVerb = "led"

// ReplacementFor picks the power word that replaces weak: the first word listing weak in its
// replaces, else the first high or very-high strength word.
func ReplacementFor(weak string, words []types.PowerWord) string {
	weak = strings.ToLower(strings.TrimSpace(weak))
	for _, w := range words {
		for _, r := range w.Replaces {
			if strings.ToLower(strings.TrimSpace(r)) == weak && w.Word != "" {
				return strings.ToLower(w.Word)
			}
		}
	}
	for _, w := range words {
		if w.Strong() && w.Word != "" {
			return strings.ToLower(w.Word)
		}
	}
	return fallbackStrongVerb
}

// ReplaceWeakVerb substitutes the first weak verb in text with its replacement.
// A weak verb opening the text is replaced with a capitalised verb.
func ReplaceWeakVerb(text string, weakVerbs []string, words []types.PowerWord) (replaced, weak, strong string, leading, ok bool) {
	trimmed := strings.TrimSpace(text)

	if weak, ok = evaluation.LeadingWeakVerb(trimmed, weakVerbs); ok {
		strong = ReplacementFor(weak, words)
		return capitalize(strong) + trimmed[len(weak):], weak, strong, true, true
	}

	weak, idx, ok := evaluation.FindWeakVerb(trimmed, weakVerbs)
	if !ok || len(strings.ToLower(trimmed)) != len(trimmed) {
		return "", "", "", false, false
	}
	strong = ReplacementFor(weak, words)
	return trimmed[:idx] + strong + trimmed[idx+len(weak):], weak, strong, false, true
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
