package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Experience scoring
const (
	// overqualifiedPenalty is subtracted per year above the required maximum
	overqualifiedPenalty = 5.0
	// overqualifiedFloor is the lowest score an over-range candidate can get
	overqualifiedFloor = 70.0
)

// proficiencyCredit is the share of a skill's weight earned at each level.
// A matched skill with no declared level earns unknownProficiencyCredit.
var proficiencyCredit = map[types.Proficiency]float64{
	types.ProficiencyBeginner:     0.4,
	types.ProficiencyIntermediate: 0.65,
	types.ProficiencyAdvanced:     0.85,
	types.ProficiencyExpert:       1.0,
}

const unknownProficiencyCredit = 0.75

// Location scoring, in points
const (
	locationExact       = 100.0
	locationSameRegion  = 70.0
	locationElsewhere   = 50.0
	locationWantsRemote = 30.0
)

// DeriveSubScores computes the four sub-scores from a candidate's raw attributes.
// matches are the candidate's skill matches against the job, in required order.
// Every returned score is within [0, 100].
func DeriveSubScores(job *types.JobDescription, c *types.Candidate, matches []types.SkillMatch) types.SubScores {
	return types.SubScores{
		Experience: roundScore(computeExperienceScore(c.Experience.YearsTotal, job.ExperienceRequired)),
		Skills:     roundScore(computeSkillsScore(matches)),
		Education:  roundScore(computeEducationScore(c.Education, job.EducationLevel)),
		Location:   roundScore(computeLocationScore(job, c)),
	}
}

// computeExperienceScore scores total years against the required range.
// Inside the range scores 100; below it scales linearly from 0; above it loses
// overqualifiedPenalty per extra year down to overqualifiedFloor.
// A zero Max means the range has no upper bound.
func computeExperienceScore(years float64, req types.ExperienceRange) float64 {
	if years < req.Min {
		if req.Min <= 0 {
			return 100
		}
		return 100 * years / req.Min
	}
	if req.Max > 0 && years > req.Max {
		return math.Max(overqualifiedFloor, 100-overqualifiedPenalty*(years-req.Max))
	}
	return 100
}

// computeSkillsScore averages proficiency credit over every required skill.
// With nothing required the candidate gets full marks.
func computeSkillsScore(matches []types.SkillMatch) float64 {
	if len(matches) == 0 {
		return 100
	}

	earned := 0.0
	for _, m := range matches {
		if !m.HasSkill {
			continue
		}
		credit, ok := proficiencyCredit[m.ProficiencyLevel]
		if !ok {
			credit = unknownProficiencyCredit
		}
		earned += credit
	}

	return 100 * earned / float64(len(matches))
}

// computeLocationScore rates how well the candidate's location and work-type
// preference fit the job.
func computeLocationScore(job *types.JobDescription, c *types.Candidate) float64 {
	if job.WorkType == types.WorkTypeRemote || strings.TrimSpace(job.Location) == "" {
		return locationExact
	}

	jobLoc := strings.ToLower(strings.TrimSpace(job.Location))
	candLoc := strings.ToLower(strings.TrimSpace(c.Location))

	switch {
	case candLoc == jobLoc:
		return locationExact
	case candLoc != "" && region(candLoc) == region(jobLoc):
		return locationSameRegion
	case c.WorkTypePreference == types.WorkTypeRemote:
		// remote-only candidate for a role that needs presence
		return locationWantsRemote
	default:
		return locationElsewhere
	}
}

// region returns the part of a "City, Region" location after the last comma.
func region(loc string) string {
	if idx := strings.LastIndex(loc, ","); idx >= 0 {
		return strings.TrimSpace(loc[idx+1:])
	}
	return loc
}

// roundScore rounds to one decimal place and keeps the value inside [0, 100].
func roundScore(v float64) float64 {
	v = math.Round(v*10) / 10
	return math.Min(100, math.Max(0, v))
}
