package skills

import (
	"github.com/jonathan/candidate-ranker/internal/types"
)

// DefaultTopSkills is how many skill matches a candidate card shows before "+N more"
const DefaultTopSkills = 6

// MatchOptions selects which requirement lists are matched besides technical skills
type MatchOptions struct {
	IncludeSoft           bool
	IncludeCertifications bool
}

// MatchRequirements matches the technical skills of req, followed by soft skills
// and certifications when enabled. A name appearing in two enabled lists is a duplicate.
func MatchRequirements(req types.SkillRequirements, declared map[string]types.DeclaredSkill, opts MatchOptions) ([]types.SkillMatch, error) {
	required := make([]string, 0, len(req.Technical)+len(req.Soft)+len(req.Certifications))
	required = append(required, req.Technical...)
	if opts.IncludeSoft {
		required = append(required, req.Soft...)
	}
	if opts.IncludeCertifications {
		required = append(required, req.Certifications...)
	}
	return ComputeSkillMatches(required, declared)
}

// Coverage summarizes how many required skills a candidate has
type Coverage struct {
	Matched int     `json:"matched"`
	Total   int     `json:"total"`
	Ratio   float64 `json:"ratio"`
}

// Summarize counts matched skills. Ratio is 0 when nothing is required.
func Summarize(matches []types.SkillMatch) Coverage {
	c := Coverage{Total: len(matches)}
	for _, m := range matches {
		if m.HasSkill {
			c.Matched++
		}
	}
	if c.Total > 0 {
		c.Ratio = float64(c.Matched) / float64(c.Total)
	}
	return c
}

// Top returns the first n matches and how many were left out.
// A non-positive n shows everything.
func Top(matches []types.SkillMatch, n int) ([]types.SkillMatch, int) {
	if n <= 0 || len(matches) <= n {
		return matches, 0
	}
	return matches[:n], len(matches) - n
}

// MatchedNames returns the names of matched skills in match order.
func MatchedNames(matches []types.SkillMatch) []string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.HasSkill {
			names = append(names, m.Skill)
		}
	}
	return names
}
