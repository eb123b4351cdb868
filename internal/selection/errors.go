// Package selection tracks which candidate a reviewer has open, at most one per requisition.
package selection

import "fmt"

// Error represents an error that occurs while changing a selection
type Error struct {
	CandidateID int
	Message     string
	Cause       error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("candidate %d: %s", e.CandidateID, e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}
