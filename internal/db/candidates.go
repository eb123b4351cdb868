package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// insertCandidateSQL places the new row after the requisition's last candidate
const insertCandidateSQL = `INSERT INTO candidates (requisition_id, candidate_id, position, name, profile)
	VALUES ($1, $2,
	        (SELECT COALESCE(MAX(position) + 1, 0) FROM candidates WHERE requisition_id = $1),
	        $3, $4)`

// AddCandidate appends a candidate to a requisition's pool. The candidate is
// stored after every existing one so ListCandidates returns insertion order.
func (db *DB) AddCandidate(ctx context.Context, requisitionID uuid.UUID, c *types.Candidate) error {
	profile, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal candidate: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		insertCandidateSQL,
		requisitionID, c.ID, c.Name, profile,
	)
	if err != nil {
		return fmt.Errorf("failed to add candidate %d: %w", c.ID, err)
	}
	return nil
}

// AddCandidates appends a pool in order inside one transaction
func (db *DB) AddCandidates(ctx context.Context, requisitionID uuid.UUID, candidates []types.Candidate) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := range candidates {
		c := &candidates[i]
		profile, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal candidate: %w", err)
		}
		_, err = tx.Exec(ctx,
			insertCandidateSQL,
			requisitionID, c.ID, c.Name, profile,
		)
		if err != nil {
			return fmt.Errorf("failed to add candidate %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit candidates: %w", err)
	}
	return nil
}

// ListCandidates returns a requisition's candidates in insertion order.
// An unknown requisition yields an empty pool.
func (db *DB) ListCandidates(ctx context.Context, requisitionID uuid.UUID) ([]types.Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT profile FROM candidates WHERE requisition_id = $1 ORDER BY position`,
		requisitionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []types.Candidate{}
	for rows.Next() {
		var profile []byte
		if err := rows.Scan(&profile); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		var c types.Candidate
		if err := json.Unmarshal(profile, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}
