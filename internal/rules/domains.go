package rules

import "strings"

// Supported domain identifiers
const (
	DomainWebDeveloper   = "web-developer"
	DomainDataScientist  = "data-scientist"
	DomainCyberSecurity  = "cyber-security"
	DomainAIMLEngineer   = "aiml-engineer"
	DomainDevOpsEngineer = "devops-engineer"
)

// AvailableDomains returns the domains that ship with a rule bundle
func AvailableDomains() []string {
	return []string{
		DomainWebDeveloper,
		DomainDataScientist,
		DomainCyberSecurity,
		DomainAIMLEngineer,
		DomainDevOpsEngineer,
	}
}

// IsKnownDomain reports whether domain is one of AvailableDomains
func IsKnownDomain(domain string) bool {
	for _, d := range AvailableDomains() {
		if d == domain {
			return true
		}
	}
	return false
}

// camelDomain converts a kebab-case domain id to camelCase ("web-developer" -> "webDeveloper")
func camelDomain(domain string) string {
	parts := strings.Split(domain, "-")
	var sb strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			sb.WriteString(part)
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}
