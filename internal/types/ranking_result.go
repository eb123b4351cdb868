//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// RankingResult is one ranking run over a requisition's candidates
type RankingResult struct {
	RunID         uuid.UUID     `json:"run_id"`
	RequisitionID string        `json:"requisition_id,omitempty"`
	JobTitle      string        `json:"job_title"`
	Company       string        `json:"company,omitempty"`
	SortKey       SortKey       `json:"sort_key"`
	Weights       Weights       `json:"weights"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Entries       []RankedEntry `json:"entries"`
}

// RankedEntry is a candidate at its position in a ranking
type RankedEntry struct {
	Rank      int       `json:"rank"`
	Candidate Candidate `json:"candidate"`
	Notes     string    `json:"notes,omitempty"`
}

// Candidates returns the ranked candidates in order.
func (r *RankingResult) Candidates() []Candidate {
	out := make([]Candidate, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, e.Candidate)
	}
	return out
}

// Dataset bundles requisitions with their candidate pools. It is the file
// format read by the in-memory repository.
type Dataset struct {
	Requisitions []Requisition `json:"requisitions"`
}

// Requisition is a job description together with the candidates applying to it
type Requisition struct {
	ID         string         `json:"id"`
	Job        JobDescription `json:"job_description"`
	Candidates []Candidate    `json:"candidates"`
}
