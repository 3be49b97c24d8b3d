package parsing

import (
	"strings"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":           "Go",
	"go lang":          "Go",
	"javascript":       "JavaScript",
	"js":               "JavaScript",
	"es6":              "JavaScript",
	"typescript":       "TypeScript",
	"ts":               "TypeScript",
	"k8s":              "Kubernetes",
	"kubernetes":       "Kubernetes",
	"react.js":         "React",
	"reactjs":          "React",
	"vue.js":           "Vue",
	"vuejs":            "Vue",
	"node.js":          "Node.js",
	"nodejs":           "Node.js",
	"node":             "Node.js",
	"express.js":       "Express",
	"expressjs":        "Express",
	"mongo":            "MongoDB",
	"mongodb":          "MongoDB",
	"postgres":         "PostgreSQL",
	"postgresql":       "PostgreSQL",
	"mysql":            "MySQL",
	"sklearn":          "scikit-learn",
	"scikit learn":     "scikit-learn",
	"tf":               "TensorFlow",
	"tensorflow":       "TensorFlow",
	"pytorch":          "PyTorch",
	"ml":               "Machine Learning",
	"machine learning": "Machine Learning",
	"dl":               "Deep Learning",
	"nlp":              "NLP",
	"aws":              "AWS",
	"gcp":              "GCP",
	"html5":            "HTML",
	"html":             "HTML",
	"css3":             "CSS",
	"css":              "CSS",
	"sql":              "SQL",
	"c++":              "C++",
	"cpp":              "C++",
	"c#":               "C#",
	"csharp":           "C#",
	"ci/cd":            "CI/CD",
	"cicd":             "CI/CD",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	if skillName == "" {
		return ""
	}

	normalized := strings.TrimSpace(skillName)

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// All-caps single words that aren't known acronyms get only their first letter capitalized
	if normalized == strings.ToUpper(normalized) && len(normalized) > 1 {
		if !strings.Contains(lower, " ") {
			return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
		}
	}

	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		// Already has mixed case, return as-is
		return normalized
	}

	if normalized == strings.ToLower(normalized) && !strings.Contains(normalized, " ") && len(normalized) > 0 {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// SkillKey returns the lowercase canonical form of a skill, suitable for de-duplication
func SkillKey(skillName string) string {
	return strings.ToLower(NormalizeSkillName(skillName))
}

// NormalizeSkills normalizes skill names and removes duplicates, keeping the first occurrence
func NormalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return skills
	}

	normalized := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))

	for _, skill := range skills {
		name := NormalizeSkillName(skill)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, name)
	}

	return normalized
}
