// Package skills provides functionality to match a candidate's declared skills against required skills.
package skills

import (
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/types"
	"github.com/jonathan/candidate-ranker/internal/validation"
	"golang.org/x/text/cases"
)

// keyer folds skill names for exact, case-insensitive comparison.
// A Caser is stateful, so each matching call builds its own.
type keyer struct {
	folder cases.Caser
}

func newKeyer() *keyer {
	return &keyer{folder: cases.Fold()}
}

func (k *keyer) key(name string) string {
	return k.folder.String(name)
}

// ComputeSkillMatches produces one SkillMatch per required skill, in required order.
// A skill matches when the candidate declares it under the same name ignoring case;
// matched entries carry the declared years and proficiency verbatim.
func ComputeSkillMatches(required []string, declared map[string]types.DeclaredSkill) ([]types.SkillMatch, error) {
	k := newKeyer()

	if err := checkRequired(k, required); err != nil {
		return nil, err
	}

	index, err := indexDeclared(k, declared)
	if err != nil {
		return nil, err
	}

	matches := make([]types.SkillMatch, 0, len(required))
	for _, name := range required {
		match := types.SkillMatch{Skill: name}
		if skill, ok := index[k.key(name)]; ok {
			match.HasSkill = true
			if skill.Years != nil {
				years := *skill.Years
				match.ExperienceYears = &years
			}
			match.ProficiencyLevel = skill.Proficiency
		}
		matches = append(matches, match)
	}

	return matches, nil
}

// checkRequired rejects empty names and names that repeat once case is ignored.
func checkRequired(k *keyer, required []string) error {
	seen := make(map[string]string, len(required))
	for i, name := range required {
		if strings.TrimSpace(name) == "" {
			return validation.InputErrorf("required_skills", "entry %d is empty", i)
		}
		key := k.key(name)
		if prev, dup := seen[key]; dup {
			return validation.InputErrorf("required_skills", "duplicate skill %q (already listed as %q)", name, prev)
		}
		seen[key] = name
	}
	return nil
}

// indexDeclared keys the candidate's skills by folded name, checking each record.
// Names are visited in sorted order so a bad record always reports the same error.
func indexDeclared(k *keyer, declared map[string]types.DeclaredSkill) (map[string]types.DeclaredSkill, error) {
	index := make(map[string]types.DeclaredSkill, len(declared))
	names := make(map[string]string, len(declared))

	for _, name := range slices.Sorted(maps.Keys(declared)) {
		skill := declared[name]
		if skill.Years != nil {
			years := *skill.Years
			if math.IsNaN(years) || math.IsInf(years, 0) {
				return nil, validation.InputErrorf("candidate_skills", "%q has non-finite years", name)
			}
			if years < 0 {
				return nil, validation.InputErrorf("candidate_skills", "%q has negative years (%v)", name, years)
			}
		}
		if skill.Proficiency != "" && !skill.Proficiency.Valid() {
			return nil, validation.InputErrorf("candidate_skills", "%q has unknown proficiency %q", name, skill.Proficiency)
		}

		key := k.key(name)
		if prev, dup := names[key]; dup {
			return nil, validation.InputErrorf("candidate_skills", "%q and %q name the same skill", prev, name)
		}
		names[key] = name
		index[key] = skill
	}

	return index, nil
}
