package rules

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/placement-prep/internal/types"
)

// RawBundle is a rule bundle decoded from one of the supported shapes, before defaults are applied
type RawBundle struct {
	Domain      string
	DisplayName string
	Levels      map[types.Level]RawLevel
}

// RawLevel holds the rule groups of one level. Weights is nil when the source omitted the weights object.
type RawLevel struct {
	Rules   types.RuleGroups
	Weights *types.ScoringWeights
}

// ShapeDetector recognizes one bundle layout and decodes it.
// Detect returns ok=false when the document is not in its shape.
type ShapeDetector interface {
	Name() string
	Detect(domain string, doc map[string]json.RawMessage) (bundle *RawBundle, ok bool, err error)
}

// DefaultShapeDetectors returns the detectors tried in order by a Loader
func DefaultShapeDetectors() []ShapeDetector {
	return []ShapeDetector{FlatKeyedShape{}, LegacyNestedShape{}}
}

// FlatKeyedShape handles bundles of the form {"<camelDomain>Rules": {...}}, {"rules": {...}} or {"<domain>": {...}}
type FlatKeyedShape struct{}

// Name implements ShapeDetector
func (FlatKeyedShape) Name() string { return "flat-keyed" }

type flatRuleSet struct {
	Domain           string                `json:"domain"`
	DisplayName      string                `json:"displayName"`
	ExperienceLevels map[string]*flatLevel `json:"experienceLevels"`
}

type flatLevel struct {
	Rules                 types.RuleGroups      `json:"rules"`
	OverallScoringWeights *types.ScoringWeights `json:"overallScoringWeights"`
}

// Detect implements ShapeDetector
func (FlatKeyedShape) Detect(domain string, doc map[string]json.RawMessage) (*RawBundle, bool, error) {
	for _, key := range []string{camelDomain(domain) + "Rules", "rules", domain} {
		raw, exists := doc[key]
		if !exists {
			continue
		}

		var set flatRuleSet
		if err := json.Unmarshal(raw, &set); err != nil {
			return nil, false, fmt.Errorf("failed to decode %q: %w", key, err)
		}
		if len(set.ExperienceLevels) == 0 {
			continue
		}

		bundle := &RawBundle{
			Domain:      set.Domain,
			DisplayName: set.DisplayName,
			Levels:      make(map[types.Level]RawLevel, len(set.ExperienceLevels)),
		}
		for name, level := range set.ExperienceLevels {
			if level == nil || !types.Level(name).Valid() {
				continue
			}
			bundle.Levels[types.Level(name)] = RawLevel{Rules: level.Rules, Weights: level.OverallScoringWeights}
		}
		return bundle, true, nil
	}
	return nil, false, nil
}

// LegacyNestedShape handles bundles of the form {"ruleEngine": {"domains": {"<domain>": {...}}}}.
// The legacy format has no per-level rules, so every level receives the same groups.
type LegacyNestedShape struct{}

// Name implements ShapeDetector
func (LegacyNestedShape) Name() string { return "legacy-nested" }

type legacyEngine struct {
	Version string                     `json:"version"`
	Domains map[string]json.RawMessage `json:"domains"`
}

type legacyDomain struct {
	DisplayName     string                `json:"displayName"`
	CriticalSkills  []legacySkill         `json:"criticalSkills"`
	PreferredSkills []legacySkill         `json:"preferredSkills"`
	ActionVerbs     []legacyVerb          `json:"actionVerbs"`
	WeakVerbs       []string              `json:"weakVerbs"`
	MetricUnits     []string              `json:"metricUnits"`
	RedFlags        []types.RedFlag       `json:"redFlags"`
	Sections        []string              `json:"sections"`
	ScoringWeights  *types.ScoringWeights `json:"scoringWeights"`
}

// legacySkill accepts either a bare skill name or a skill object
type legacySkill struct {
	types.SkillRule
}

func (s *legacySkill) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		s.Name = name
		return nil
	}
	return json.Unmarshal(data, &s.SkillRule)
}

// legacyVerb accepts either a bare verb or a power word object
type legacyVerb struct {
	types.PowerWord
}

func (v *legacyVerb) UnmarshalJSON(data []byte) error {
	var word string
	if err := json.Unmarshal(data, &word); err == nil {
		v.Word = word
		return nil
	}
	return json.Unmarshal(data, &v.PowerWord)
}

// Detect implements ShapeDetector
func (LegacyNestedShape) Detect(domain string, doc map[string]json.RawMessage) (*RawBundle, bool, error) {
	raw, exists := doc["ruleEngine"]
	if !exists {
		return nil, false, nil
	}

	var engine legacyEngine
	if err := json.Unmarshal(raw, &engine); err != nil {
		return nil, false, fmt.Errorf("failed to decode ruleEngine: %w", err)
	}

	entry, exists := engine.Domains[domain]
	if !exists {
		entry, exists = engine.Domains[camelDomain(domain)]
	}
	if !exists {
		return nil, false, nil
	}

	var d legacyDomain
	if err := json.Unmarshal(entry, &d); err != nil {
		return nil, false, fmt.Errorf("failed to decode ruleEngine.domains.%s: %w", domain, err)
	}

	groups := types.RuleGroups{
		RequiredSkills: types.SkillGroupRules{
			Category: "Critical Skills",
			Skills:   toSkillRules(d.CriticalSkills, types.ImportanceCritical),
		},
		NiceToHaveSkills: types.SkillGroupRules{
			Category: "Preferred Skills",
			Skills:   toSkillRules(d.PreferredSkills, types.ImportanceMedium),
		},
		PowerWords: types.PowerWordRules{
			Category:  "Action Verbs",
			Words:     toPowerWords(d.ActionVerbs),
			WeakVerbs: d.WeakVerbs,
		},
		MetricsFramework: types.MetricsFramework{
			Category: "Quantified Impact",
			Units:    d.MetricUnits,
		},
		RedFlags: types.RedFlagRules{
			Category: "Red Flags",
			Flags:    d.RedFlags,
		},
	}
	for _, section := range d.Sections {
		groups.ResumeStructure.Sections = append(groups.ResumeStructure.Sections, types.SectionGuideline{Name: section, Required: true})
	}

	bundle := &RawBundle{
		Domain:      domain,
		DisplayName: d.DisplayName,
		Levels:      make(map[types.Level]RawLevel, 3),
	}
	for _, level := range types.Levels() {
		bundle.Levels[level] = RawLevel{Rules: cloneGroups(groups), Weights: d.ScoringWeights}
	}
	return bundle, true, nil
}

func toSkillRules(skills []legacySkill, importance string) []types.SkillRule {
	out := make([]types.SkillRule, 0, len(skills))
	for _, s := range skills {
		rule := s.SkillRule
		if rule.Importance == "" {
			rule.Importance = importance
		}
		out = append(out, rule)
	}
	return out
}

func toPowerWords(verbs []legacyVerb) []types.PowerWord {
	out := make([]types.PowerWord, 0, len(verbs))
	for _, v := range verbs {
		out = append(out, v.PowerWord)
	}
	return out
}
