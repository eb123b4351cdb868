package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/skills"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// maxNotedSkills caps how many matched skills are named in a note
const maxNotedSkills = 3

// Notes creates a brief explanation of a candidate's scores.
func Notes(c *types.Candidate) string {
	var parts []string

	// Skill match description
	coverage := skills.Summarize(c.SkillMatches)
	matched := skills.MatchedNames(c.SkillMatches)
	if len(matched) > maxNotedSkills {
		matched = append(matched[:maxNotedSkills:maxNotedSkills], fmt.Sprintf("+%d more", len(matched)-maxNotedSkills))
	}
	switch {
	case coverage.Total == 0:
		// no skill data
	case coverage.Ratio >= 0.7:
		parts = append(parts, fmt.Sprintf("Strong skill match (%s)", strings.Join(matched, ", ")))
	case coverage.Ratio >= 0.4:
		parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", strings.Join(matched, ", ")))
	case coverage.Matched > 0:
		parts = append(parts, fmt.Sprintf("Weak skill match (%s)", strings.Join(matched, ", ")))
	default:
		parts = append(parts, "No required skills matched")
	}

	// Experience description
	switch {
	case c.ExperienceScore >= 90:
		parts = append(parts, "Experience on target")
	case c.ExperienceScore >= 70:
		parts = append(parts, "Experience close to range")
	default:
		parts = append(parts, "Experience gap")
	}

	if c.LocationScore >= 90 {
		parts = append(parts, "Location fit")
	}

	return strings.Join(parts, ". ")
}
