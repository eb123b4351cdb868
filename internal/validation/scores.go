package validation

import (
	"math"

	"github.com/jonathan/candidate-ranker/internal/types"
)

const (
	// MinScore and MaxScore bound every score field
	MinScore = 0.0
	MaxScore = 100.0

	// WeightSumTolerance is how far the weight total may drift from 1.0
	WeightSumTolerance = 1e-6
)

// ValidateScore fails when v is non-finite or outside [0, 100].
func ValidateScore(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return InputErrorf(field, "score must be finite, got %v", v)
	}
	if v < MinScore || v > MaxScore {
		return InputErrorf(field, "score %v outside [%v, %v]", v, MinScore, MaxScore)
	}
	return nil
}

// ValidateSubScores checks each of the four component scores.
func ValidateSubScores(s types.SubScores) error {
	checks := []struct {
		field string
		value float64
	}{
		{"experience", s.Experience},
		{"skills", s.Skills},
		{"education", s.Education},
		{"location", s.Location},
	}
	for _, c := range checks {
		if err := ValidateScore(c.field, c.value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCandidateScores checks every score field carried by a candidate.
func ValidateCandidateScores(c *types.Candidate) error {
	if err := ValidateSubScores(c.SubScores()); err != nil {
		return &InvalidInputError{Field: "candidate", Message: c.Name, Cause: err}
	}
	if err := ValidateScore("overall", float64(c.OverallScore)); err != nil {
		return &InvalidInputError{Field: "candidate", Message: c.Name, Cause: err}
	}
	return nil
}

// ValidateWeights fails when a weight is negative or non-finite, or when the
// four do not sum to 1.0 within WeightSumTolerance.
func ValidateWeights(w types.Weights) error {
	checks := []struct {
		field string
		value float64
	}{
		{"experience_weight", w.ExperienceWeight},
		{"skills_weight", w.SkillsWeight},
		{"education_weight", w.EducationWeight},
		{"location_weight", w.LocationWeight},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return ConfigErrorf(c.field, "weight must be finite, got %v", c.value)
		}
		if c.value < 0 {
			return ConfigErrorf(c.field, "weight must be non-negative, got %v", c.value)
		}
	}

	sum := w.Sum()
	// drift is rounded to 1e-12 so a total of exactly 1 ± tolerance passes
	if drift := math.Round(math.Abs(sum-1.0)*1e12) / 1e12; drift > WeightSumTolerance {
		return ConfigErrorf("weights", "must sum to 1.0, got %v", sum)
	}
	return nil
}

// Validator is implemented by records that check their own structure
type Validator interface {
	Validate() error
}

// ValidateRecord runs a record's structural checks and reports failures as invalid input.
func ValidateRecord(field string, r Validator) error {
	if err := r.Validate(); err != nil {
		return &InvalidInputError{Field: field, Message: "record failed validation", Cause: err}
	}
	return nil
}
