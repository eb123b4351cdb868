// Package types provides type definitions for structured data used throughout the candidate-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// WorkType describes where a role is performed, or where a candidate prefers to work.
type WorkType string

// Work type values. Flexible is only meaningful as a candidate preference.
const (
	WorkTypeRemote   WorkType = "Remote"
	WorkTypeHybrid   WorkType = "Hybrid"
	WorkTypeOnSite   WorkType = "On-site"
	WorkTypeFlexible WorkType = "Flexible"
)

// SalaryRange represents a compensation band
type SalaryRange struct {
	Min      float64 `json:"min" validate:"gte=0"`
	Max      float64 `json:"max" validate:"gtefield=Min"`
	Currency string  `json:"currency" validate:"required,len=3"`
}

// ExperienceRange represents the years of experience a role asks for
type ExperienceRange struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// SkillRequirements groups the skills named by a job description.
// Each list is ordered; order drives the order of skill matches.
type SkillRequirements struct {
	Technical      []string `json:"technical"`
	Soft           []string `json:"soft,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
}

// JobDescription represents a parsed requisition. It is read-only to the ranking engine.
type JobDescription struct {
	ID                 string            `json:"id,omitempty" validate:"omitempty,uuid"`
	Title              string            `json:"title" validate:"required"`
	Company            string            `json:"company" validate:"required"`
	Location           string            `json:"location"`
	WorkType           WorkType          `json:"work_type" validate:"omitempty,oneof=Remote Hybrid On-site"`
	SalaryRange        *SalaryRange      `json:"salary_range,omitempty"`
	ExperienceRequired ExperienceRange   `json:"experience_required"`
	EducationLevel     string            `json:"education_level,omitempty"`
	Skills             SkillRequirements `json:"skills"`
	Responsibilities   []string          `json:"responsibilities,omitempty"`
	Benefits           []string          `json:"benefits,omitempty"`
	Industry           string            `json:"industry,omitempty"`
	Department         string            `json:"department,omitempty"`
}

// Validate checks the structural constraints of the job description.
func (j *JobDescription) Validate() error {
	if err := validator.New().Struct(j); err != nil {
		return fmt.Errorf("invalid job description: %w", err)
	}
	return nil
}
