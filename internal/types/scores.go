//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// SubScores are the four component scores feeding the overall score, each in [0, 100]
type SubScores struct {
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
	Education  float64 `json:"education"`
	Location   float64 `json:"location"`
}

// Weights configures how sub-scores combine into the overall score.
// Each weight is non-negative and the four sum to 1.0.
type Weights struct {
	ExperienceWeight float64 `json:"experience_weight"`
	SkillsWeight     float64 `json:"skills_weight"`
	EducationWeight  float64 `json:"education_weight"`
	LocationWeight   float64 `json:"location_weight"`
}

// DefaultWeights is the weighting reproducing the reference dashboard example:
// experience and skills dominate, education is moderate, location is lightest.
func DefaultWeights() Weights {
	return Weights{
		ExperienceWeight: 0.35,
		SkillsWeight:     0.35,
		EducationWeight:  0.20,
		LocationWeight:   0.10,
	}
}

// Sum returns the total of the four weights.
func (w Weights) Sum() float64 {
	return w.ExperienceWeight + w.SkillsWeight + w.EducationWeight + w.LocationWeight
}

// IsZero reports whether no weight has been set.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// SortKey selects the field a ranking is ordered by
type SortKey string

// Sort keys. Numeric keys sort descending, SortByName ascending.
const (
	SortByOverall    SortKey = "overall"
	SortByExperience SortKey = "experience"
	SortBySkills     SortKey = "skills"
	SortByName       SortKey = "name"
)

// SortKeys lists every supported key in display order.
func SortKeys() []SortKey {
	return []SortKey{SortByOverall, SortByExperience, SortBySkills, SortByName}
}

// Valid reports whether k is a supported sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortByOverall, SortByExperience, SortBySkills, SortByName:
		return true
	}
	return false
}

// sortKeyAliases maps every accepted spelling, lowercased, to its key.
var sortKeyAliases = map[string]SortKey{
	"":                 SortByOverall,
	"overall":          SortByOverall,
	"overallscore":     SortByOverall,
	"overall_score":    SortByOverall,
	"experience":       SortByExperience,
	"experiencescore":  SortByExperience,
	"experience_score": SortByExperience,
	"skills":           SortBySkills,
	"skillsscore":      SortBySkills,
	"skills_score":     SortBySkills,
	"name":             SortByName,
}

// ParseSortKey parses a sort key. It accepts the short names as well as the
// dashboard field names (overallScore, experience_score, ...).
// An empty string yields SortByOverall.
func ParseSortKey(s string) (SortKey, error) {
	if key, ok := sortKeyAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}
