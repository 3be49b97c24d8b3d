// Package types provides type definitions for structured data used throughout the placement-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Resume is the aggregate edited by the resume builder and persisted as an opaque JSON blob.
type Resume struct {
	ID             string          `json:"id,omitempty"`
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experiences    []Experience    `json:"experiences" validate:"dive"`
	Education      []Education     `json:"education" validate:"dive"`
	Skills         []SkillGroup    `json:"skills" validate:"dive"`
	Projects       []Project       `json:"projects" validate:"dive"`
	Publications   []Publication   `json:"publications,omitempty" validate:"dive"`
	Certifications []Certification `json:"certifications,omitempty" validate:"dive"`
	Languages      []Language      `json:"languages,omitempty" validate:"dive"`
	VolunteerWork  []VolunteerWork `json:"volunteerWork,omitempty" validate:"dive"`
}

// PersonalInfo holds contact details, online presence links and the summary
type PersonalInfo struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub    string `json:"github,omitempty" validate:"omitempty,url"`
	Portfolio string `json:"portfolio,omitempty" validate:"omitempty,url"`
	Website   string `json:"website,omitempty" validate:"omitempty,url"`
	Summary   string `json:"summary"`
}

// Experience represents a single job or internship entry
type Experience struct {
	ID           string   `json:"id,omitempty"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current,omitempty"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education represents a degree or course of study
type Education struct {
	ID          string `json:"id,omitempty"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// SkillGroup is a category of skills. Items may themselves be comma-separated lists.
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Project represents a personal, academic or open-source project
type Project struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty" validate:"omitempty,url"`
}

// Publication is an optional resume section
type Publication struct {
	Title     string `json:"title" validate:"required"`
	Publisher string `json:"publisher,omitempty"`
	Date      string `json:"date,omitempty"`
	Link      string `json:"link,omitempty" validate:"omitempty,url"`
}

// Certification is an optional resume section
type Certification struct {
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Language is an optional resume section
type Language struct {
	Name        string `json:"name" validate:"required"`
	Proficiency string `json:"proficiency,omitempty"`
}

// VolunteerWork is an optional resume section
type VolunteerWork struct {
	Organization string `json:"organization" validate:"required"`
	Role         string `json:"role,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Validate validates the Resume using the validator.
// It only rejects malformed values; missing sections are a scoring concern, not a validation one.
func (r *Resume) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
