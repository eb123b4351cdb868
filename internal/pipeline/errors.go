// Package pipeline ranks the candidate pools of stored requisitions, one or many at a time.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError reports a requisition the repository does not know
type NotFoundError struct {
	RequisitionID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("requisition %s not found", e.RequisitionID)
}

// Error wraps a failure of one requisition inside a batch
type Error struct {
	RequisitionID uuid.UUID
	Message       string
	Cause         error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("requisition %s: %s: %v", e.RequisitionID, e.Message, e.Cause)
	}
	return fmt.Sprintf("requisition %s: %s", e.RequisitionID, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
