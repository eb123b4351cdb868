package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/pipeline"
	"github.com/jonathan/candidate-ranker/internal/ranking"
	"github.com/jonathan/candidate-ranker/internal/skills"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// SkillMatchRequest is the body of POST /skill-matches
type SkillMatchRequest struct {
	RequiredSkills  []string                       `json:"required_skills"`
	CandidateSkills map[string]types.DeclaredSkill `json:"candidate_skills"`
}

// SkillMatchResponse lists one match per required skill, in order
type SkillMatchResponse struct {
	Matches  []types.SkillMatch `json:"matches"`
	Coverage skills.Coverage    `json:"coverage"`
}

// OverallScoreRequest is the body of POST /overall-score.
// Weights default to the server's configured weights.
type OverallScoreRequest struct {
	SubScores *types.SubScores `json:"sub_scores" validate:"required"`
	Weights   *types.Weights   `json:"weights,omitempty"`
}

// OverallScoreResponse carries the combined score and its display tier
type OverallScoreResponse struct {
	OverallScore int                `json:"overall_score"`
	Tier         observability.Tier `json:"tier"`
}

// RankingRequest is the body of POST /rankings. Unset options fall back to
// the server's configured defaults.
type RankingRequest struct {
	JobDescription      *types.JobDescription `json:"job_description" validate:"required"`
	Candidates          []types.Candidate     `json:"candidates"`
	Weights             *types.Weights        `json:"weights,omitempty"`
	SortKey             string                `json:"sort_key,omitempty"`
	Locale              string                `json:"locale,omitempty"`
	DeriveSubScores     *bool                 `json:"derive_sub_scores,omitempty"`
	MatchSoftSkills     *bool                 `json:"match_soft_skills,omitempty"`
	MatchCertifications *bool                 `json:"match_certifications,omitempty"`
}

// RequisitionSummary is one row of GET /requisitions
type RequisitionSummary struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Company             string    `json:"company"`
	Candidates          int       `json:"candidates"`
	SelectedCandidateID *int      `json:"selected_candidate_id"`
}

// ListRequisitionsResponse represents the response for listing requisitions
type ListRequisitionsResponse struct {
	Requisitions []RequisitionSummary `json:"requisitions"`
	Count        int                  `json:"count"`
}

// handleSkillMatches matches a candidate's declared skills against a required list
func (s *Server) handleSkillMatches(w http.ResponseWriter, r *http.Request) {
	var req SkillMatchRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.failed(w, err)
		return
	}

	matches, err := skills.ComputeSkillMatches(req.RequiredSkills, req.CandidateSkills)
	if err != nil {
		s.failed(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SkillMatchResponse{
		Matches:  matches,
		Coverage: skills.Summarize(matches),
	})
}

// handleOverallScore combines four sub-scores into an overall score
func (s *Server) handleOverallScore(w http.ResponseWriter, r *http.Request) {
	var req OverallScoreRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.failed(w, err)
		return
	}

	weights := s.rankingOpts.Weights
	if req.Weights != nil {
		weights = *req.Weights
	}

	score, err := ranking.ComputeOverallScore(*req.SubScores, weights)
	if err != nil {
		s.failed(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, OverallScoreResponse{
		OverallScore: score,
		Tier:         observability.ScoreTier(score),
	})
}

// handleRankings ranks a pool sent in the request body
func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	var req RankingRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.failed(w, err)
		return
	}

	opts, err := s.requestOptions(&req)
	if err != nil {
		s.failed(w, err)
		return
	}

	start := time.Now()
	ranked, err := ranking.Evaluate(req.JobDescription, req.Candidates, opts)
	if err != nil {
		s.metrics.ObserveError(err)
		s.failed(w, err)
		return
	}
	s.metrics.ObserveRanking(string(opts.SortKey), len(ranked), time.Since(start))

	result := ranking.BuildResult(req.JobDescription, ranked, opts)
	if s.db != nil {
		if err := s.db.SaveRankingRun(r.Context(), result); err != nil {
			s.failed(w, err)
			return
		}
	}

	s.logger.Debug("ad-hoc ranking",
		append(logger.RankingFields(result.RequisitionID, string(opts.SortKey), len(ranked)),
			zap.Stringer("run_id", result.RunID))...)
	s.jsonResponse(w, http.StatusOK, result)
}

// requestOptions applies the overrides of a ranking request to the defaults
func (s *Server) requestOptions(req *RankingRequest) (ranking.Options, error) {
	opts := s.rankingOpts

	if req.Weights != nil {
		opts.Weights = *req.Weights
	}
	if req.SortKey != "" {
		key, err := types.ParseSortKey(req.SortKey)
		if err != nil {
			return opts, &ErrValidation{Field: "sort_key", Message: err.Error()}
		}
		opts.SortKey = key
	}
	if req.Locale != "" {
		tag, err := language.Parse(req.Locale)
		if err != nil {
			return opts, &ErrValidation{Field: "locale", Message: "not a BCP 47 tag"}
		}
		opts.Locale = tag
	}
	if req.DeriveSubScores != nil {
		opts.DeriveSubScores = *req.DeriveSubScores
	}
	if req.MatchSoftSkills != nil {
		opts.MatchSoftSkills = *req.MatchSoftSkills
	}
	if req.MatchCertifications != nil {
		opts.MatchCertifications = *req.MatchCertifications
	}
	return opts, nil
}

// queryOptions applies the sort and derive query parameters to the defaults
func (s *Server) queryOptions(r *http.Request) (ranking.Options, error) {
	opts := s.rankingOpts
	q := r.URL.Query()

	if raw := q.Get("sort"); raw != "" {
		key, err := types.ParseSortKey(raw)
		if err != nil {
			return opts, &ErrValidation{Field: "sort", Message: err.Error()}
		}
		opts.SortKey = key
	}
	if raw := q.Get("derive"); raw != "" {
		derive, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, &ErrValidation{Field: "derive", Message: "must be a boolean"}
		}
		opts.DeriveSubScores = derive
	}
	return opts, nil
}

// parseRequisitionID reads the {id} path segment
func parseRequisitionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "not a UUID"}
	}
	return id, nil
}

// handleListRequisitions lists the stored requisitions with pool sizes
func (s *Server) handleListRequisitions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ids, err := s.repo.ListRequisitionIDs(ctx)
	if err != nil {
		s.failed(w, err)
		return
	}

	out := make([]RequisitionSummary, 0, len(ids))
	for _, id := range ids {
		job, err := s.repo.GetJobDescription(ctx, id)
		if err != nil {
			s.failed(w, err)
			return
		}
		if job == nil {
			// removed since listing
			continue
		}
		pool, err := s.repo.ListCandidates(ctx, id)
		if err != nil {
			s.failed(w, err)
			return
		}

		summary := RequisitionSummary{ID: id, Title: job.Title, Company: job.Company, Candidates: len(pool)}
		if selected, ok := s.selections.Selected(id.String()); ok {
			summary.SelectedCandidateID = &selected
		}
		out = append(out, summary)
	}

	s.jsonResponse(w, http.StatusOK, ListRequisitionsResponse{Requisitions: out, Count: len(out)})
}

// handleRequisitionRanking ranks the stored pool of one requisition
func (s *Server) handleRequisitionRanking(w http.ResponseWriter, r *http.Request) {
	id, err := parseRequisitionID(r)
	if err != nil {
		s.failed(w, err)
		return
	}

	opts, err := s.queryOptions(r)
	if err != nil {
		s.failed(w, err)
		return
	}

	pipeOpts := pipeline.Options{
		Ranking: opts,
		Logger:  s.logger,
		Metrics: s.metrics,
	}
	if s.db != nil {
		pipeOpts.Sink = s.db
	}

	result, err := pipeline.RankRequisition(r.Context(), s.repo, id, pipeOpts)
	if err != nil {
		s.failed(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleListRankingRuns lists the persisted ranking runs of a requisition
func (s *Server) handleListRankingRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotImplemented, "ranking history requires a database")
		return
	}

	id, err := parseRequisitionID(r)
	if err != nil {
		s.failed(w, err)
		return
	}

	runs, err := s.db.ListRankingRuns(r.Context(), id)
	if err != nil {
		s.failed(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

// handleGetRankingRun returns one persisted ranking result
func (s *Server) handleGetRankingRun(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotImplemented, "ranking history requires a database")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.failed(w, &ErrValidation{Field: "id", Message: "not a UUID"})
		return
	}

	result, err := s.db.GetRankingRun(r.Context(), runID)
	if err != nil {
		s.failed(w, err)
		return
	}
	if result == nil {
		s.errorResponse(w, http.StatusNotFound, "Ranking run not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}
