package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/placement-prep/internal/types"
)

func testRules() *types.LevelRules {
	return &types.LevelRules{
		Rules: types.RuleGroups{
			RequiredSkills: types.SkillGroupRules{Skills: []types.SkillRule{
				{Name: "JavaScript", Aliases: []string{"js"}, Weight: 1},
				{Name: "React", Weight: 1},
				{Name: "Node.js", Aliases: []string{"node"}, Weight: 0.8},
				{Name: "Kubernetes", Aliases: []string{"k8s"}, Weight: 1},
			}},
			PowerWords: types.PowerWordRules{
				Words: []types.PowerWord{
					{Word: "led", Strength: types.StrengthVeryHigh},
					{Word: "built", Strength: types.StrengthHigh},
					{Word: "reduced", Strength: types.StrengthVeryHigh},
					{Word: "launched", Strength: types.StrengthVeryHigh},
				},
				WeakVerbs:   []string{"responsible for", "worked on", "helped"},
				TargetCount: 8,
			},
			MetricsFramework: types.MetricsFramework{
				Units:       []string{"users", "students", "hours"},
				TargetCount: 4,
			},
			ResumeStructure: types.ResumeStructureRules{SummaryWords: types.WordRange{Min: 20, Max: 100}},
		},
		OverallScoringWeights: types.DefaultScoringWeights(),
	}
}

func completeResume() *types.Resume {
	return &types.Resume{
		PersonalInfo: types.PersonalInfo{
			FullName: "Asha Rao",
			Email:    "asha.rao@example.com",
			Phone:    "+91 98765 43210",
			GitHub:   "https://github.com/asharao",
			Summary: "Final-year computer science student who built React and Node.js products used by 2,000 students. " +
				"Reduced page load time by 40% and enjoys shipping reliable web software.",
		},
		Experiences: []types.Experience{{
			Company:  "Acme Labs",
			Position: "Software Engineering Intern",
			Description: "- Built a React dashboard used by 2,000 students\n" +
				"- Reduced API latency by 40% with Redis caching\n" +
				"- Led a team of 4 interns and launched the placement portal",
		}},
		Projects: []types.Project{{
			Name:         "Placement Tracker",
			Description:  "Built a MERN app with MongoDB, Express, React and Node that saved coordinators 10 hours a week",
			Technologies: []string{"MongoDB", "Express", "React", "Node.js"},
		}},
		Skills: []types.SkillGroup{
			{Category: "Languages", Items: []string{"JavaScript, Python"}},
			{Category: "Web", Items: []string{"React", "Node.js", "Express", "MongoDB"}},
			{Category: "Tools", Items: []string{"Git, Redis"}},
		},
		Education: []types.Education{{Institution: "NIT Trichy", Degree: "B.Tech", Field: "Computer Science"}},
	}
}

func stuffedSkills(n int) []types.SkillGroup {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("tool%02d", i)
	}
	return []types.SkillGroup{{Category: "Everything", Items: []string{strings.Join(items, ", ")}}}
}
