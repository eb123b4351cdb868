package selection

import "sync"

// Selection holds the currently selected candidate of one ranking view.
// Selecting never changes scores or ordering. Safe for concurrent use.
type Selection struct {
	mu       sync.Mutex
	pool     map[int]struct{}
	selected int
	has      bool
}

// New creates an empty selection. When pool is non-empty only those
// candidate IDs may be selected.
func New(pool ...int) *Selection {
	s := &Selection{}
	if len(pool) > 0 {
		s.pool = make(map[int]struct{}, len(pool))
		for _, id := range pool {
			s.pool[id] = struct{}{}
		}
	}
	return s
}

// SetPool restricts the selection to pool, replacing any earlier restriction.
// An empty pool rejects every ID. A selected candidate that left the pool is
// deselected.
func (s *Selection) SetPool(pool []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pool = make(map[int]struct{}, len(pool))
	for _, id := range pool {
		s.pool[id] = struct{}{}
	}
	if _, ok := s.pool[s.selected]; s.has && !ok {
		s.selected, s.has = 0, false
	}
}

func (s *Selection) check(id int) error {
	if s.pool == nil {
		return nil
	}
	if _, ok := s.pool[id]; !ok {
		return &Error{CandidateID: id, Message: "not in the candidate pool"}
	}
	return nil
}

// Select makes id the selected candidate, replacing any previous one.
func (s *Selection) Select(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(id); err != nil {
		return err
	}
	s.selected, s.has = id, true
	return nil
}

// Toggle selects id, or clears the selection when id is already selected.
// It reports whether id is selected afterwards.
func (s *Selection) Toggle(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(id); err != nil {
		return false, err
	}
	if s.has && s.selected == id {
		s.selected, s.has = 0, false
		return false, nil
	}
	s.selected, s.has = id, true
	return true, nil
}

// Clear removes the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected, s.has = 0, false
}

// Selected returns the selected candidate ID, if any.
func (s *Selection) Selected() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.has
}
