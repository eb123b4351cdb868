package db

import (
	"time"

	"github.com/google/uuid"
)

// Requisition is the summary row of a stored job description
type Requisition struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
}

// RankingRun is the summary row of a persisted ranking result
type RankingRun struct {
	ID            uuid.UUID  `json:"id"`
	RequisitionID *uuid.UUID `json:"requisition_id,omitempty"`
	SortKey       string     `json:"sort_key"`
	CreatedAt     time.Time  `json:"created_at"`
}
