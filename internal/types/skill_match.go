//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Proficiency is an ordered skill level: Beginner < Intermediate < Advanced < Expert.
type Proficiency string

// Proficiency levels
const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

var proficiencyRank = map[Proficiency]int{
	ProficiencyBeginner:     1,
	ProficiencyIntermediate: 2,
	ProficiencyAdvanced:     3,
	ProficiencyExpert:       4,
}

// Rank returns the ordinal of the level (1..4), or 0 when unset or unknown.
func (p Proficiency) Rank() int {
	return proficiencyRank[p]
}

// Valid reports whether p is one of the four known levels.
func (p Proficiency) Valid() bool {
	_, ok := proficiencyRank[p]
	return ok
}

// ParseProficiency parses a level name case-insensitively.
func ParseProficiency(s string) (Proficiency, error) {
	for level := range proficiencyRank {
		if strings.EqualFold(strings.TrimSpace(s), string(level)) {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown proficiency level %q", s)
}

// DeclaredSkill is a skill as the candidate reports it. Both fields are optional.
type DeclaredSkill struct {
	Years       *float64    `json:"years,omitempty"`
	Proficiency Proficiency `json:"proficiency,omitempty"`
}

// SkillMatch records whether a candidate has one required skill.
// ExperienceYears and ProficiencyLevel are only set when HasSkill is true.
type SkillMatch struct {
	Skill            string      `json:"skill"`
	HasSkill         bool        `json:"has_skill"`
	ExperienceYears  *float64    `json:"experience_years,omitempty"`
	ProficiencyLevel Proficiency `json:"proficiency_level,omitempty"`
}

// Years returns a pointer to v, for building DeclaredSkill literals.
func Years(v float64) *float64 {
	return &v
}
