//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CandidateExperience is the candidate's most recent position plus total years worked
type CandidateExperience struct {
	Title      string  `json:"title"`
	Company    string  `json:"company"`
	Duration   string  `json:"duration,omitempty"`
	YearsTotal float64 `json:"years_total" validate:"gte=0"`
}

// CandidateEducation is the candidate's highest education entry
type CandidateEducation struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution,omitempty"`
	Year        int    `json:"year,omitempty"`
}

// Candidate represents a parsed applicant profile.
// The ranking engine never mutates a Candidate; it returns annotated copies.
type Candidate struct {
	ID                 int                      `json:"id"`
	Name               string                   `json:"name" validate:"required"`
	Email              string                   `json:"email,omitempty" validate:"omitempty,email"`
	Phone              string                   `json:"phone,omitempty"`
	Location           string                   `json:"location,omitempty"`
	CurrentTitle       string                   `json:"current_title,omitempty"`
	Avatar             string                   `json:"avatar,omitempty"`
	Experience         CandidateExperience      `json:"experience"`
	Education          CandidateEducation       `json:"education"`
	ExperienceScore    float64                  `json:"experience_score"`
	SkillsScore        float64                  `json:"skills_score"`
	EducationScore     float64                  `json:"education_score"`
	LocationScore      float64                  `json:"location_score"`
	OverallScore       int                      `json:"overall_score"`
	SkillMatches       []SkillMatch             `json:"skill_matches,omitempty"`
	DeclaredSkills     map[string]DeclaredSkill `json:"declared_skills,omitempty"`
	Summary            string                   `json:"summary,omitempty"`
	LastActive         string                   `json:"last_active,omitempty"`
	ExpectedSalary     *SalaryRange             `json:"expected_salary,omitempty"`
	Availability       string                   `json:"availability,omitempty"`
	WorkTypePreference WorkType                 `json:"work_type_preference,omitempty" validate:"omitempty,oneof=Remote Hybrid On-site Flexible"`
}

// SubScores returns the four component scores of the candidate.
func (c Candidate) SubScores() SubScores {
	return SubScores{
		Experience: c.ExperienceScore,
		Skills:     c.SkillsScore,
		Education:  c.EducationScore,
		Location:   c.LocationScore,
	}
}

// WithSubScores returns a copy of the candidate carrying s.
func (c Candidate) WithSubScores(s SubScores) Candidate {
	c.ExperienceScore = s.Experience
	c.SkillsScore = s.Skills
	c.EducationScore = s.Education
	c.LocationScore = s.Location
	return c
}

// Validate checks the structural constraints of the candidate record.
func (c *Candidate) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid candidate %d: %w", c.ID, err)
	}
	return nil
}

// CandidateSet is the document shape used for candidate files
type CandidateSet struct {
	Candidates []Candidate `json:"candidates"`
}
