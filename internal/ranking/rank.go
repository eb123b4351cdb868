package ranking

import (
	"cmp"
	"slices"

	"github.com/jonathan/candidate-ranker/internal/types"
	"github.com/jonathan/candidate-ranker/internal/validation"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation used for name ordering when none is given
var DefaultLocale = language.English

// RankCandidates orders candidates by key using the default locale for names.
// See RankCandidatesIn.
func RankCandidates(candidates []types.Candidate, key types.SortKey) ([]types.Candidate, error) {
	return RankCandidatesIn(candidates, key, DefaultLocale)
}

// RankCandidatesIn returns a new slice holding candidates ordered by key:
// overall, experience and skills descending, name ascending under the collation
// rules of locale. The sort is stable, so candidates with equal keys keep their
// input order; no other tie-break is applied. The input slice is not modified.
//
// Every score field of every candidate must be finite and within [0, 100],
// whichever key is requested.
func RankCandidatesIn(candidates []types.Candidate, key types.SortKey, locale language.Tag) ([]types.Candidate, error) {
	if !key.Valid() {
		return nil, validation.InputErrorf("sort_key", "unknown sort key %q", key)
	}
	for i := range candidates {
		if err := validation.ValidateCandidateScores(&candidates[i]); err != nil {
			return nil, err
		}
	}

	ranked := slices.Clone(candidates)
	if ranked == nil {
		ranked = []types.Candidate{}
	}
	slices.SortStableFunc(ranked, comparator(key, locale))
	return ranked, nil
}

// comparator returns the ordering function for key. Numeric keys compare
// b against a to sort descending.
func comparator(key types.SortKey, locale language.Tag) func(a, b types.Candidate) int {
	switch key {
	case types.SortByExperience:
		return func(a, b types.Candidate) int { return cmp.Compare(b.ExperienceScore, a.ExperienceScore) }
	case types.SortBySkills:
		return func(a, b types.Candidate) int { return cmp.Compare(b.SkillsScore, a.SkillsScore) }
	case types.SortByName:
		// a Collator keeps internal buffers; one per ranking call
		c := collate.New(locale)
		return func(a, b types.Candidate) int { return c.CompareString(a.Name, b.Name) }
	default:
		return func(a, b types.Candidate) int { return cmp.Compare(b.OverallScore, a.OverallScore) }
	}
}
