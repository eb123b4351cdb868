package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/pipeline"
	"github.com/jonathan/candidate-ranker/internal/selection"
)

// SelectionRequest is the body of PUT /requisitions/{id}/selection and the toggle route
type SelectionRequest struct {
	CandidateID *int `json:"candidate_id" validate:"required"`
}

// SelectionResponse reports the selected candidate of a requisition, if any
type SelectionResponse struct {
	RequisitionID       uuid.UUID `json:"requisition_id"`
	SelectedCandidateID *int      `json:"selected_candidate_id"`
}

// selectionFor returns the selection of a stored requisition, restricted to
// its current pool. The pool is listed on every call so candidates added or
// removed since the last request are honored.
func (s *Server) selectionFor(ctx context.Context, id uuid.UUID) (*selection.Selection, error) {
	job, err := s.repo.GetJobDescription(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		s.selections.Reset(id.String())
		return nil, &pipeline.NotFoundError{RequisitionID: id}
	}

	pool, err := s.repo.ListCandidates(ctx, id)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(pool))
	for i, c := range pool {
		ids[i] = c.ID
	}

	return s.selections.For(id.String(), ids), nil
}

func selectionResponse(id uuid.UUID, sel *selection.Selection) SelectionResponse {
	resp := SelectionResponse{RequisitionID: id}
	if selected, ok := sel.Selected(); ok {
		resp.SelectedCandidateID = &selected
	}
	return resp
}

// handleGetSelection returns the selected candidate of a requisition
func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	id, err := parseRequisitionID(r)
	if err != nil {
		s.failed(w, err)
		return
	}

	sel, err := s.selectionFor(r.Context(), id)
	if err != nil {
		s.failed(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, selectionResponse(id, sel))
}

// handleSetSelection selects a candidate, replacing any previous selection
func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	id, err := parseRequisitionID(r)
	if err != nil {
		s.failed(w, err)
		return
	}

	var req SelectionRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.failed(w, err)
		return
	}

	sel, err := s.selectionFor(r.Context(), id)
	if err != nil {
		s.failed(w, err)
		return
	}
	if err := sel.Select(*req.CandidateID); err != nil {
		s.failed(w, err)
		return
	}
	s.metrics.SelectionsChanged.Inc()

	s.jsonResponse(w, http.StatusOK, selectionResponse(id, sel))
}

// handleClearSelection removes the selection of a requisition
func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	id, err := parseRequisitionID(r)
	if err != nil {
		s.failed(w, err)
		return
	}

	sel, err := s.selectionFor(r.Context(), id)
	if err != nil {
		s.failed(w, err)
		return
	}
	sel.Clear()
	s.metrics.SelectionsChanged.Inc()

	s.jsonResponse(w, http.StatusOK, selectionResponse(id, sel))
}

// handleToggleSelection selects a candidate, or deselects it when already selected
func (s *Server) handleToggleSelection(w http.ResponseWriter, r *http.Request) {
	id, err := parseRequisitionID(r)
	if err != nil {
		s.failed(w, err)
		return
	}

	var req SelectionRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.failed(w, err)
		return
	}

	sel, err := s.selectionFor(r.Context(), id)
	if err != nil {
		s.failed(w, err)
		return
	}
	selected, err := sel.Toggle(*req.CandidateID)
	if err != nil {
		s.failed(w, err)
		return
	}
	s.metrics.SelectionsChanged.Inc()

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"selected":  selected,
		"selection": selectionResponse(id, sel),
	})
}
