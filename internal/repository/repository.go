// Package repository defines where the ranker reads requisitions and candidate pools from.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// Repository provides read access to requisitions and their candidate pools.
// Lookups of unknown requisitions return nil, nil rather than an error.
type Repository interface {
	GetJobDescription(ctx context.Context, id uuid.UUID) (*types.JobDescription, error)
	ListCandidates(ctx context.Context, id uuid.UUID) ([]types.Candidate, error)
	ListRequisitionIDs(ctx context.Context) ([]uuid.UUID, error)
}
