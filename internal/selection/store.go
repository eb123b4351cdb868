package selection

import "sync"

// Store keeps one Selection per requisition
type Store struct {
	mu         sync.Mutex
	selections map[string]*Selection
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{selections: make(map[string]*Selection)}
}

// For returns the selection of a requisition restricted to its current pool,
// creating it on first use. Every call replaces the restriction, so callers
// pass the pool as it is now.
func (st *Store) For(requisitionID string, pool []int) *Selection {
	st.mu.Lock()
	s, ok := st.selections[requisitionID]
	if !ok {
		s = New()
		st.selections[requisitionID] = s
	}
	st.mu.Unlock()

	s.SetPool(pool)
	return s
}

// Selected returns the selected candidate of a requisition without creating state.
func (st *Store) Selected(requisitionID string) (int, bool) {
	st.mu.Lock()
	s, ok := st.selections[requisitionID]
	st.mu.Unlock()

	if !ok {
		return 0, false
	}
	return s.Selected()
}

// Reset drops the selection state of a requisition.
func (st *Store) Reset(requisitionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.selections, requisitionID)
}
