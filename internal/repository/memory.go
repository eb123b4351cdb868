package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/candidate-ranker/internal/schemas"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// MemoryStore is a Repository held in memory, typically loaded from a dataset file
type MemoryStore struct {
	mu         sync.RWMutex
	order      []uuid.UUID
	jobs       map[uuid.UUID]types.JobDescription
	candidates map[uuid.UUID][]types.Candidate
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:       make(map[uuid.UUID]types.JobDescription),
		candidates: make(map[uuid.UUID][]types.Candidate),
	}
}

// Put stores a requisition, replacing any previous one with the same ID.
// The job's ID field is set to id.
func (s *MemoryStore) Put(id uuid.UUID, job types.JobDescription, candidates []types.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; !exists {
		s.order = append(s.order, id)
	}
	job.ID = id.String()
	s.jobs[id] = job
	s.candidates[id] = slices.Clone(candidates)
}

// GetJobDescription returns a copy of the requisition's job description, or nil, nil.
func (s *MemoryStore) GetJobDescription(_ context.Context, id uuid.UUID) (*types.JobDescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	return &job, nil
}

// ListCandidates returns a copy of the requisition's pool in stored order.
// An unknown requisition yields an empty pool.
func (s *MemoryStore) ListCandidates(_ context.Context, id uuid.UUID) ([]types.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool := slices.Clone(s.candidates[id])
	if pool == nil {
		pool = []types.Candidate{}
	}
	return pool, nil
}

// ListRequisitionIDs returns requisition IDs in insertion order.
func (s *MemoryStore) ListRequisitionIDs(_ context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order), nil
}

// FromDataset builds a store from a decoded dataset.
func FromDataset(ds *types.Dataset) (*MemoryStore, error) {
	s := NewMemoryStore()
	for i, req := range ds.Requisitions {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, fmt.Errorf("requisition %d has invalid id %q: %w", i, req.ID, err)
		}
		if _, dup := s.jobs[id]; dup {
			return nil, fmt.Errorf("requisition %s appears twice", id)
		}
		s.Put(id, req.Job, req.Candidates)
	}
	return s, nil
}

// LoadDataset reads a dataset file, checks it against the dataset schema when
// the schema can be found, and builds a store from it.
func LoadDataset(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.DatasetSchema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return nil, fmt.Errorf("dataset %s does not match schema: %w", path, err)
		}
	}

	var ds types.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset JSON: %w", err)
	}
	return FromDataset(&ds)
}
