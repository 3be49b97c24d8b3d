// Package types provides type definitions for structured data used throughout the placement-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// JobContext is the optional job description a resume is matched against
type JobContext struct {
	Title           string   `json:"title,omitempty"`
	RoleType        string   `json:"roleType,omitempty"`
	RequiredSkills  []string `json:"requiredSkills" validate:"dive,required"`
	PreferredSkills []string `json:"preferredSkills" validate:"dive,required"`
	Description     string   `json:"description,omitempty"`
}

// Validate validates the JobContext using the validator.
func (j *JobContext) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}
