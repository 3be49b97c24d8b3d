package evaluation

import "strings"

// Role types a job posting can be aligned to
const (
	RoleFrontend  = "frontend"
	RoleBackend   = "backend"
	RoleFullStack = "fullstack"
	RoleData      = "data"
	RoleML        = "ml"
	RoleSecurity  = "security"
	RoleDevOps    = "devops"
	RoleMobile    = "mobile"
)

type roleKeywords struct {
	role     string
	keywords []string
}

// order matters: full stack is checked before frontend and backend
var roleTable = []roleKeywords{
	{RoleFullStack, []string{"full stack", "full-stack", "fullstack", "mern", "mean"}},
	{RoleFrontend, []string{"frontend", "front-end", "front end", "react", "angular", "vue", "ui developer", "css"}},
	{RoleBackend, []string{"backend", "back-end", "back end", "api", "microservice", "server-side", "database"}},
	{RoleML, []string{"machine learning", "deep learning", "ml engineer", "ai engineer", "nlp", "computer vision", "pytorch", "tensorflow"}},
	{RoleData, []string{"data scientist", "data analyst", "analytics", "statistics", "sql", "pandas", "data science"}},
	{RoleSecurity, []string{"security", "soc analyst", "penetration", "siem", "incident response", "vulnerability"}},
	{RoleDevOps, []string{"devops", "sre", "site reliability", "kubernetes", "ci/cd", "terraform", "infrastructure"}},
	{RoleMobile, []string{"android", "ios", "flutter", "react native", "kotlin", "swift", "mobile"}},
}

// RoleTypes returns the known role types in detection order
func RoleTypes() []string {
	roles := make([]string, 0, len(roleTable))
	for _, r := range roleTable {
		roles = append(roles, r.role)
	}
	return roles
}

// DetectRoleType returns the first role whose keywords appear in text, or "" when none do
func DetectRoleType(text string) string {
	lower := strings.ToLower(text)
	for _, r := range roleTable {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.role
			}
		}
	}
	return ""
}

// RoleKeywords returns the keywords of a role, or nil for an unknown role
func RoleKeywords(role string) []string {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, r := range roleTable {
		if r.role == role {
			return r.keywords
		}
	}
	return nil
}

// roleAligned reports whether the corpus shows the role, counting full stack as both frontend and backend
func roleAligned(corpus, role string) bool {
	keywords := RoleKeywords(role)
	if keywords == nil {
		return true
	}
	for _, kw := range keywords {
		if strings.Contains(corpus, kw) {
			return true
		}
	}
	if role == RoleFullStack {
		return roleAligned(corpus, RoleFrontend) && roleAligned(corpus, RoleBackend)
	}
	return false
}
