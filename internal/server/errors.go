package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/candidate-ranker/internal/pipeline"
	"github.com/jonathan/candidate-ranker/internal/selection"
	"github.com/jonathan/candidate-ranker/internal/validation"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Errors are matched through wrapping, so a pipeline error keeps the status
// of the engine error that caused it.
func HTTPStatus(err error) int {
	var (
		notFound  *pipeline.NotFoundError
		selectErr *selection.Error
		reqErr    *ErrValidation
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case validation.IsInvalidConfig(err):
		return http.StatusUnprocessableEntity
	case validation.IsInvalidInput(err), errors.As(err, &selectErr), errors.As(err, &reqErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
