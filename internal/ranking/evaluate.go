package ranking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/candidate-ranker/internal/skills"
	"github.com/jonathan/candidate-ranker/internal/types"
	"github.com/jonathan/candidate-ranker/internal/validation"
	"golang.org/x/text/language"
)

// Options controls a full evaluation of a candidate pool
type Options struct {
	Weights types.Weights
	SortKey types.SortKey
	// Locale drives name collation; the zero tag means DefaultLocale.
	Locale language.Tag
	// DeriveSubScores recomputes the four sub-scores from raw attributes
	// instead of trusting the values carried by each candidate.
	DeriveSubScores     bool
	MatchSoftSkills     bool
	MatchCertifications bool
}

// Evaluate scores and orders candidates for job. For each candidate carrying
// declared skills the skill matches are recomputed against the job; sub-scores
// are derived when opts.DeriveSubScores is set; the overall score is computed
// with opts.Weights and the pool is ranked by opts.SortKey.
//
// Nothing is mutated: the returned slice holds annotated copies.
func Evaluate(job *types.JobDescription, candidates []types.Candidate, opts Options) ([]types.Candidate, error) {
	if job == nil {
		return nil, validation.InputErrorf("job_description", "is required")
	}
	if err := validation.ValidateRecord("job_description", job); err != nil {
		return nil, err
	}
	if err := validation.ValidateWeights(opts.Weights); err != nil {
		return nil, err
	}
	if !opts.SortKey.Valid() {
		return nil, validation.InputErrorf("sort_key", "unknown sort key %q", opts.SortKey)
	}
	if err := checkCandidates(candidates); err != nil {
		return nil, err
	}

	matchOpts := skills.MatchOptions{
		IncludeSoft:           opts.MatchSoftSkills,
		IncludeCertifications: opts.MatchCertifications,
	}

	prepared := make([]types.Candidate, len(candidates))
	for i, c := range candidates {
		if c.DeclaredSkills != nil {
			matches, err := skills.MatchRequirements(job.Skills, c.DeclaredSkills, matchOpts)
			if err != nil {
				return nil, fmt.Errorf("failed to match skills for candidate %d (%s): %w", c.ID, c.Name, err)
			}
			c.SkillMatches = matches
		}
		if opts.DeriveSubScores {
			c = c.WithSubScores(DeriveSubScores(job, &c, c.SkillMatches))
		}
		prepared[i] = c
	}

	scored, err := ScoreCandidates(prepared, opts.Weights)
	if err != nil {
		return nil, err
	}

	locale := opts.Locale
	if locale == language.Und {
		locale = DefaultLocale
	}
	return RankCandidatesIn(scored, opts.SortKey, locale)
}

// checkCandidates validates each record and rejects repeated IDs.
func checkCandidates(candidates []types.Candidate) error {
	seen := make(map[int]string, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if err := validation.ValidateRecord("candidates", c); err != nil {
			return err
		}
		if prev, dup := seen[c.ID]; dup {
			return validation.InputErrorf("candidates", "id %d used by both %q and %q", c.ID, prev, c.Name)
		}
		seen[c.ID] = c.Name
	}
	return nil
}

// BuildResult wraps an ordered candidate list into a RankingResult with a fresh run ID.
func BuildResult(job *types.JobDescription, ranked []types.Candidate, opts Options) *types.RankingResult {
	result := &types.RankingResult{
		RunID:         uuid.New(),
		RequisitionID: job.ID,
		JobTitle:      job.Title,
		Company:       job.Company,
		SortKey:       opts.SortKey,
		Weights:       opts.Weights,
		GeneratedAt:   time.Now().UTC(),
		Entries:       make([]types.RankedEntry, 0, len(ranked)),
	}

	for i, c := range ranked {
		result.Entries = append(result.Entries, types.RankedEntry{
			Rank:      i + 1,
			Candidate: c,
			Notes:     Notes(&c),
		})
	}
	return result
}
