package evaluation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/placement-prep/internal/types"
)

// CountWord counts whole-word, case-insensitive occurrences of phrase in text
func CountWord(text, phrase string) int {
	text = strings.ToLower(text)
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return 0
	}

	count := 0
	for start := 0; start < len(text); {
		idx := IndexWord(text[start:], phrase)
		if idx < 0 {
			break
		}
		count++
		start += idx + len(phrase)
	}
	return count
}

// IndexWord returns the byte index of the first whole-word occurrence of phrase in text, or -1.
// Both arguments are expected in lowercase.
func IndexWord(text, phrase string) int {
	if phrase == "" {
		return -1
	}
	offset := 0
	for {
		idx := strings.Index(text[offset:], phrase)
		if idx < 0 {
			return -1
		}
		begin := offset + idx
		end := begin + len(phrase)
		if boundaryBefore(text, begin) && boundaryAfter(text, end) {
			return begin
		}
		offset = begin + 1
		if offset >= len(text) {
			return -1
		}
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// StrongVerbOccurrences counts occurrences of high and very-high power words in text
func StrongVerbOccurrences(text string, words []types.PowerWord) int {
	total := 0
	for _, w := range words {
		if w.Strong() {
			total += CountWord(text, w.Word)
		}
	}
	return total
}

// DistinctPowerWords returns the power words that appear in text, in rule order
func DistinctPowerWords(text string, words []types.PowerWord) []string {
	var found []string
	seen := make(map[string]bool)
	for _, w := range words {
		word := strings.ToLower(w.Word)
		if word == "" || seen[word] {
			continue
		}
		if CountWord(text, word) > 0 {
			seen[word] = true
			found = append(found, w.Word)
		}
	}
	return found
}

// LeadingWeakVerb returns the weak verb a bullet starts with
func LeadingWeakVerb(bullet string, weakVerbs []string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(bullet))
	for _, weak := range weakVerbs {
		weak = strings.ToLower(strings.TrimSpace(weak))
		if weak == "" {
			continue
		}
		if strings.HasPrefix(lower, weak) && boundaryAfter(lower, len(weak)) {
			return weak, true
		}
	}
	return "", false
}

// FindWeakVerb returns the earliest active-voice weak verb in text and its byte offset, or ok=false.
// Passive participles such as "an API used by 5,000 users" are not weak verbs.
func FindWeakVerb(text string, weakVerbs []string) (verb string, index int, ok bool) {
	lower := strings.ToLower(text)
	index = -1
	for _, weak := range weakVerbs {
		weak = strings.ToLower(strings.TrimSpace(weak))
		if weak == "" {
			continue
		}
		idx := indexActive(lower, weak)
		if idx < 0 {
			continue
		}
		if index < 0 || idx < index || (idx == index && len(weak) > len(verb)) {
			verb, index = weak, idx
		}
	}
	return verb, index, index >= 0
}

var passiveAuxiliaries = map[string]bool{
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true, "being": true,
}

// indexActive returns the first whole-word occurrence of weak in lower that is not passive
func indexActive(lower, weak string) int {
	for offset := 0; offset < len(lower); {
		idx := IndexWord(lower[offset:], weak)
		if idx < 0 {
			return -1
		}
		idx += offset
		end := idx + len(weak)
		if !isPassive(lower, weak, idx, end) {
			return idx
		}
		offset = end
	}
	return -1
}

// isPassive reports a participle followed by "by", or a single-word verb after a form of "be"
func isPassive(lower, weak string, start, end int) bool {
	next := strings.Fields(lower[end:])
	if len(next) > 0 && strings.Trim(next[0], ",.;:") == "by" {
		return true
	}
	if strings.Contains(weak, " ") {
		return false
	}
	prev := strings.Fields(lower[:start])
	return len(prev) > 0 && passiveAuxiliaries[prev[len(prev)-1]]
}

// WeakBulletRatio is the share of bullets that start with a weak verb. No bullets yields 0.
func WeakBulletRatio(bullets []string, weakVerbs []string) float64 {
	if len(bullets) == 0 {
		return 0
	}
	weak := 0
	for _, b := range bullets {
		if _, ok := LeadingWeakVerb(b, weakVerbs); ok {
			weak++
		}
	}
	return float64(weak) / float64(len(bullets))
}
