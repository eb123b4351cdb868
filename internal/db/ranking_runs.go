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

// runRequisition parses the requisition a result belongs to; ad-hoc rankings have none.
func runRequisition(result *types.RankingResult) (*uuid.UUID, error) {
	if result.RequisitionID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(result.RequisitionID)
	if err != nil {
		return nil, fmt.Errorf("invalid requisition id %q: %w", result.RequisitionID, err)
	}
	return &id, nil
}

// SaveRankingRun persists a ranking result under its run ID
func (db *DB) SaveRankingRun(ctx context.Context, result *types.RankingResult) error {
	reqID, err := runRequisition(result)
	if err != nil {
		return err
	}

	weights, err := json.Marshal(result.Weights)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal ranking result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO ranking_runs (id, requisition_id, sort_key, weights, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		result.RunID, reqID, string(result.SortKey), weights, doc, result.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save ranking run: %w", err)
	}
	return nil
}

// GetRankingRun retrieves a persisted ranking result.
// Returns nil, nil when the run does not exist.
func (db *DB) GetRankingRun(ctx context.Context, runID uuid.UUID) (*types.RankingResult, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT result FROM ranking_runs WHERE id = $1`,
		runID,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ranking run: %w", err)
	}

	var result types.RankingResult
	if err := json.Unmarshal(doc, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ranking result: %w", err)
	}
	return &result, nil
}

// ListRankingRuns returns the runs of a requisition, newest first
func (db *DB) ListRankingRuns(ctx context.Context, requisitionID uuid.UUID) ([]RankingRun, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, requisition_id, sort_key, created_at
		 FROM ranking_runs WHERE requisition_id = $1
		 ORDER BY created_at DESC`,
		requisitionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking runs: %w", err)
	}
	defer rows.Close()

	var runs []RankingRun
	for rows.Next() {
		var r RankingRun
		if err := rows.Scan(&r.ID, &r.RequisitionID, &r.SortKey, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ranking run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ranking runs: %w", err)
	}
	return runs, nil
}
