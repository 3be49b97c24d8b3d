package suggestions

import "github.com/jonathan/placement-prep/internal/types"

func testRules() *types.LevelRules {
	return &types.LevelRules{
		Rules: types.RuleGroups{
			RequiredSkills: types.SkillGroupRules{Skills: []types.SkillRule{
				{Name: "JavaScript", Aliases: []string{"js"}, Importance: types.ImportanceCritical},
				{Name: "React", Importance: types.ImportanceCritical},
				{Name: "Git", Importance: types.ImportanceHigh},
			}},
			NiceToHaveSkills: types.SkillGroupRules{Skills: []types.SkillRule{
				{Name: "TypeScript"},
				{Name: "Docker"},
			}},
			PowerWords: types.PowerWordRules{
				Words: []types.PowerWord{
					{Word: "Optimized", Strength: types.StrengthMedium},
					{Word: "Built", Strength: types.StrengthHigh, Replaces: []string{"worked on", "made"}},
					{Word: "Spearheaded", Strength: types.StrengthVeryHigh, Replaces: []string{"responsible for"}},
				},
				WeakVerbs: []string{"responsible for", "worked on", "helped", "made"},
			},
			MetricsFramework: types.MetricsFramework{Units: []string{"users", "hours"}},
			ResumeStructure:  types.ResumeStructureRules{SummaryWords: types.WordRange{Min: 20, Max: 100}},
		},
	}
}

func summaryOf(words int) string {
	text := "Final-year student building React apps"
	for n := 5; n < words; n++ {
		text += " word"
	}
	return text
}
