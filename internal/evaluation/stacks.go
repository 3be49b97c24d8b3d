package evaluation

import (
	"strings"
)

// StackFitRatio is the share of a stack's members that must appear for text to fit the stack
const StackFitRatio = 0.6

// Stack is a named technology cluster
type Stack struct {
	Name    string
	Members []string
}

var stacks = []Stack{
	{Name: "MERN", Members: []string{"mongodb", "express", "react", "node"}},
	{Name: "MEAN", Members: []string{"mongodb", "express", "angular", "node"}},
	{Name: "LAMP", Members: []string{"linux", "apache", "mysql", "php"}},
	{Name: "JAMstack", Members: []string{"javascript", "api", "markdown", "next.js", "gatsby", "netlify"}},
	{Name: "Django", Members: []string{"python", "django", "postgresql", "rest"}},
	{Name: "Spring", Members: []string{"java", "spring", "hibernate", "maven", "mysql"}},
	{Name: "PyData", Members: []string{"python", "pandas", "numpy", "scikit-learn", "matplotlib", "jupyter"}},
	{Name: "MLOps", Members: []string{"docker", "kubernetes", "mlflow", "airflow", "model serving"}},
	{Name: "DevOps", Members: []string{"docker", "kubernetes", "terraform", "jenkins", "ansible", "prometheus"}},
	{Name: "ELK", Members: []string{"elasticsearch", "logstash", "kibana"}},
	{Name: "SOC", Members: []string{"siem", "splunk", "incident response", "threat", "ids", "firewall"}},
}

// Stacks returns the known stack clusters
func Stacks() []Stack {
	out := make([]Stack, len(stacks))
	copy(out, stacks)
	return out
}

// Fits reports whether at least StackFitRatio of the stack's members occur in the lowercase text
func (s Stack) Fits(text string) bool {
	if len(s.Members) == 0 {
		return false
	}
	found := 0
	for _, m := range s.Members {
		if strings.Contains(text, m) {
			found++
		}
	}
	return float64(found)/float64(len(s.Members)) >= StackFitRatio
}

// StacksIn returns the names of every stack that fits the lowercase text
func StacksIn(text string) []string {
	var names []string
	for _, s := range stacks {
		if s.Fits(text) {
			names = append(names, s.Name)
		}
	}
	return names
}

// StackMembers returns every member term across all stacks, without duplicates
func StackMembers() []string {
	var members []string
	seen := make(map[string]bool)
	for _, s := range stacks {
		for _, m := range s.Members {
			if !seen[m] {
				seen[m] = true
				members = append(members, m)
			}
		}
	}
	return members
}
