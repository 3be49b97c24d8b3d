package ingestion

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/placement-prep/internal/evaluation"
	"github.com/jonathan/placement-prep/internal/parsing"
	"github.com/jonathan/placement-prep/internal/types"
)

type zone int

const (
	zoneNone zone = iota
	zoneRequired
	zonePreferred
	zoneOther
)

// Headings marked with "#" or a trailing colon may be longer than bare ones
const (
	maxHeadingWords         = 6
	maxUnmarkedHeadingWords = 3
)

var (
	preferredHeading = regexp.MustCompile(`(?i)\b(nice[- ]to[- ]haves?|preferred|bonus|good[- ]to[- ]have|plus points?|desirable|added advantage)\b`)
	requiredHeading  = regexp.MustCompile(`(?i)\b(requirements?|required|must[- ]haves?|qualifications?|what you(?:'ll)? need|who you are|eligibility|skills)\b`)
)

// stack members too generic to count as skills on their own
var vocabularyStoplist = map[string]bool{
	"api": true, "rest": true, "threat": true, "markdown": true, "model serving": true,
}

type vocabEntry struct {
	term string
	name string
}

// BuildJobContext detects the skills a posting asks for. Skills under a requirements heading are
// required and skills under a nice-to-have heading are preferred. Without any such heading every
// detected skill is required. The vocabulary is the level's skill rules plus the stack clusters.
func BuildJobContext(text string, levelRules *types.LevelRules) *types.JobContext {
	cleaned := CleanText(text)
	lines := strings.Split(cleaned, "\n")

	var required, preferred, other strings.Builder
	sawZoneHeading := false
	current := zoneNone
	title := ""

	first := true
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		z, isHeading := headingZone(trimmed)
		if first {
			first = false
			if (!isHeading || z == zoneOther) && parsing.WordCount(trimmed) <= 12 {
				title = strings.TrimSuffix(strings.TrimSpace(strings.TrimLeft(trimmed, "#")), ":")
				other.WriteString(strings.ToLower(title) + "\n")
				continue
			}
		}
		if isHeading {
			current = z
			if z == zoneRequired || z == zonePreferred {
				sawZoneHeading = true
			}
			continue
		}

		target := current
		if head, rest, ok := strings.Cut(trimmed, ":"); ok && strings.TrimSpace(rest) != "" {
			if hz, ok := headingZone(head + ":"); ok && (hz == zoneRequired || hz == zonePreferred) {
				target = hz
				trimmed = rest
				sawZoneHeading = true
			}
		}

		lower := strings.ToLower(trimmed) + "\n"
		switch target {
		case zoneRequired:
			required.WriteString(lower)
		case zonePreferred:
			preferred.WriteString(lower)
		default:
			other.WriteString(lower)
		}
	}

	vocab := vocabulary(levelRules)
	job := &types.JobContext{
		Title:       title,
		Description: cleaned,
	}

	if !sawZoneHeading {
		job.RequiredSkills = findSkills(required.String()+other.String(), vocab, nil)
	} else {
		job.RequiredSkills = findSkills(required.String(), vocab, nil)
		job.PreferredSkills = findSkills(preferred.String()+other.String(), vocab, job.RequiredSkills)
	}
	if job.RequiredSkills == nil {
		job.RequiredSkills = []string{}
	}
	if job.PreferredSkills == nil {
		job.PreferredSkills = []string{}
	}

	job.RoleType = evaluation.DetectRoleType(title)
	if job.RoleType == "" {
		job.RoleType = evaluation.DetectRoleType(cleaned)
	}
	return job
}

// headingZone reports whether line is a section heading and which zone it opens
func headingZone(line string) (zone, bool) {
	text := strings.TrimSpace(strings.TrimLeft(line, "#"))
	marked := strings.HasPrefix(line, "#") || strings.HasSuffix(text, ":")
	text = strings.TrimSuffix(text, ":")

	limit := maxUnmarkedHeadingWords
	if marked {
		limit = maxHeadingWords
	}
	if parsing.WordCount(text) > limit || strings.HasPrefix(line, "- ") {
		return zoneNone, false
	}
	switch {
	case preferredHeading.MatchString(text):
		return zonePreferred, true
	case requiredHeading.MatchString(text):
		return zoneRequired, true
	case marked:
		return zoneOther, true
	default:
		return zoneNone, false
	}
}

func vocabulary(levelRules *types.LevelRules) []vocabEntry {
	var vocab []vocabEntry
	seen := make(map[string]bool)
	add := func(term, name string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		vocab = append(vocab, vocabEntry{term: term, name: name})
	}

	if levelRules != nil {
		groups := []types.SkillGroupRules{levelRules.Rules.RequiredSkills, levelRules.Rules.NiceToHaveSkills}
		for _, g := range groups {
			for _, s := range g.Skills {
				for _, term := range s.Terms() {
					add(term, s.Name)
				}
			}
		}
	}
	for _, member := range evaluation.StackMembers() {
		if !vocabularyStoplist[member] {
			add(member, parsing.NormalizeSkillName(member))
		}
	}
	return vocab
}

// findSkills returns skill names in order of first appearance, skipping anything in exclude
func findSkills(text string, vocab []vocabEntry, exclude []string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[parsing.SkillKey(e)] = true
	}

	type hit struct {
		name  string
		index int
	}
	first := make(map[string]hit)
	for _, v := range vocab {
		idx := evaluation.IndexWord(text, v.term)
		if idx < 0 {
			continue
		}
		key := parsing.SkillKey(v.name)
		if skip[key] {
			continue
		}
		if h, ok := first[key]; !ok || idx < h.index {
			first[key] = hit{name: v.name, index: idx}
		}
	}

	hits := make([]hit, 0, len(first))
	for _, h := range first {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].index != hits[j].index {
			return hits[i].index < hits[j].index
		}
		return hits[i].name < hits[j].name
	})

	var names []string
	for _, h := range hits {
		names = append(names, h.name)
	}
	return names
}
