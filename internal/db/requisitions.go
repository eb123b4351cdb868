package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// requisitionID returns the job's ID, assigning a fresh one when it has none.
func requisitionID(job *types.JobDescription) (uuid.UUID, error) {
	if job.ID == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(job.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid requisition id %q: %w", job.ID, err)
	}
	return id, nil
}

// CreateRequisition stores a job description and returns its ID.
// The stored document always carries the ID it was saved under.
func (db *DB) CreateRequisition(ctx context.Context, job *types.JobDescription) (uuid.UUID, error) {
	id, err := requisitionID(job)
	if err != nil {
		return uuid.Nil, err
	}

	stored := *job
	stored.ID = id.String()
	doc, err := json.Marshal(&stored)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal job description: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO requisitions (id, title, company, job)
		 VALUES ($1, $2, $3, $4)`,
		id, stored.Title, stored.Company, doc,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create requisition: %w", err)
	}
	return id, nil
}

// GetJobDescription retrieves a job description by requisition ID.
// Returns nil, nil when the requisition does not exist.
func (db *DB) GetJobDescription(ctx context.Context, id uuid.UUID) (*types.JobDescription, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT job FROM requisitions WHERE id = $1`,
		id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get requisition: %w", err)
	}

	var job types.JobDescription
	if err := json.Unmarshal(doc, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job description: %w", err)
	}
	return &job, nil
}

// ListRequisitions returns every requisition, oldest first
func (db *DB) ListRequisitions(ctx context.Context) ([]Requisition, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, company, created_at FROM requisitions ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list requisitions: %w", err)
	}
	defer rows.Close()

	var reqs []Requisition
	for rows.Next() {
		var r Requisition
		if err := rows.Scan(&r.ID, &r.Title, &r.Company, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan requisition: %w", err)
		}
		reqs = append(reqs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requisitions: %w", err)
	}
	return reqs, nil
}

// ListRequisitionIDs returns the IDs of every requisition, oldest first
func (db *DB) ListRequisitionIDs(ctx context.Context) ([]uuid.UUID, error) {
	reqs, err := db.ListRequisitions(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}
	return ids, nil
}

// DeleteRequisition removes a requisition together with its candidates and runs
func (db *DB) DeleteRequisition(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM requisitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete requisition: %w", err)
	}
	return nil
}
