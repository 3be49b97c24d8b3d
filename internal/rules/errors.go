package rules

import "fmt"

// UnknownDomainError is returned when no rule bundle exists for a domain
type UnknownDomainError struct {
	Domain string
}

func (e *UnknownDomainError) Error() string {
	return fmt.Sprintf("no rules available for domain %q", e.Domain)
}

// LoadError represents a rule bundle that exists but could not be read, validated or normalized
type LoadError struct {
	Domain  string
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("failed to load rules for domain %q from %s: %s", e.Domain, e.Source, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", msg, e.Hint())
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Hint tells the caller which files the loader looks for
func (e *LoadError) Hint() string {
	return fmt.Sprintf("expected %s.rules.json or %s.rules.yaml", e.Domain, e.Domain)
}
