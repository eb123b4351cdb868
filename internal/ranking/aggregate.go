// Package ranking provides functionality to score candidates against a job description and order them.
package ranking

import (
	"fmt"
	"math"

	"github.com/jonathan/candidate-ranker/internal/types"
	"github.com/jonathan/candidate-ranker/internal/validation"
)

// ComputeOverallScore combines the four sub-scores with the given weights and
// rounds to the nearest integer percentage:
//
//	overall = ew·experience + sw·skills + edw·education + lw·location
//
// Weights are checked first (InvalidConfig), then sub-scores (InvalidInput).
// Inputs are never clamped.
func ComputeOverallScore(sub types.SubScores, w types.Weights) (int, error) {
	if err := validation.ValidateWeights(w); err != nil {
		return 0, err
	}
	if err := validation.ValidateSubScores(sub); err != nil {
		return 0, err
	}

	raw := w.ExperienceWeight*sub.Experience +
		w.SkillsWeight*sub.Skills +
		w.EducationWeight*sub.Education +
		w.LocationWeight*sub.Location

	overall := int(math.Round(raw))
	if err := checkOverall(overall, w); err != nil {
		return 0, err
	}
	return overall, nil
}

// checkOverall guards the 0..100 range. Validated sub-scores and weights never
// leave it.
func checkOverall(overall int, w types.Weights) error {
	if overall < 0 || overall > 100 {
		return validation.InputErrorf("overall_score", "%d out of range for weights summing to %v", overall, w.Sum())
	}
	return nil
}

// ScoreCandidates returns copies of candidates with OverallScore computed from
// their sub-scores. The input slice is not modified.
func ScoreCandidates(candidates []types.Candidate, w types.Weights) ([]types.Candidate, error) {
	if err := validation.ValidateWeights(w); err != nil {
		return nil, err
	}

	scored := make([]types.Candidate, len(candidates))
	for i, c := range candidates {
		overall, err := ComputeOverallScore(c.SubScores(), w)
		if err != nil {
			return nil, fmt.Errorf("failed to score candidate %d (%s): %w", c.ID, c.Name, err)
		}
		c.OverallScore = overall
		scored[i] = c
	}
	return scored, nil
}
