package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/candidate-ranker/internal/pipeline"
	"github.com/jonathan/candidate-ranker/internal/selection"
	"github.com/jonathan/candidate-ranker/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "sort", Message: "unsupported value"}
	assert.Equal(t, "validation error: sort - unsupported value", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	id := uuid.New()
	inputErr := validation.InputErrorf("candidates[0].name", "is required")
	configErr := validation.ConfigErrorf("weights", "must sum to 1.0")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", inputErr, http.StatusBadRequest},
		{"invalid config", configErr, http.StatusUnprocessableEntity},
		{"input through pipeline", &pipeline.Error{RequisitionID: id, Message: "failed to rank candidates", Cause: inputErr}, http.StatusBadRequest},
		{"config through pipeline", &pipeline.Error{RequisitionID: id, Message: "failed to rank candidates", Cause: configErr}, http.StatusUnprocessableEntity},
		{"not found", &pipeline.NotFoundError{RequisitionID: id}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", &pipeline.NotFoundError{RequisitionID: id}), http.StatusNotFound},
		{"selection", &selection.Error{CandidateID: 9, Message: "not in the candidate pool"}, http.StatusBadRequest},
		{"storage failure", &pipeline.Error{RequisitionID: id, Message: "failed to load candidates", Cause: errors.New("connection reset")}, http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
