package highlight

import (
	"sync"
)

// Store holds any number of possibly overlapping highlights in insertion
// order. Coverage is served from a word index map rebuilt on every change.
type Store struct {
	mu         sync.RWMutex
	highlights []Highlight
	coverage   map[int][]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{coverage: make(map[int][]string)}
}

// Add appends h, or replaces the highlight with the same ID in place.
func (s *Store) Add(h Highlight) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(h.ID); i >= 0 {
		s.highlights[i] = h
	} else {
		s.highlights = append(s.highlights, h)
	}
	s.rebuild()
}

// Replace swaps the whole set for hs.
func (s *Store) Replace(hs ...Highlight) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.highlights = append([]Highlight(nil), hs...)
	s.rebuild()
}

// Remove deletes the highlight with the given ID. It reports whether one existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.highlights = append(s.highlights[:i], s.highlights[i+1:]...)
	s.rebuild()
	return true
}

// Clear removes every highlight.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.highlights = nil
	s.rebuild()
}

// Get returns the highlight with the given ID.
func (s *Store) Get(id string) (Highlight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.highlights[i], true
	}
	return Highlight{}, false
}

// Update applies fn to the highlight with the given ID. It returns false,
// without calling fn, when the highlight no longer exists; late results for
// removed highlights are dropped this way. fn must not change the ID.
func (s *Store) Update(id string, fn func(*Highlight)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	h := s.highlights[i]
	fn(&h)
	h.ID = id
	rangeChanged := h.StartWordIndex != s.highlights[i].StartWordIndex ||
		h.EndWordIndex != s.highlights[i].EndWordIndex
	s.highlights[i] = h
	if rangeChanged {
		s.rebuild()
	}
	return true
}

// All returns a copy of the highlights in insertion order.
func (s *Store) All() []Highlight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Highlight(nil), s.highlights...)
}

// Len returns the number of highlights.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.highlights)
}

// Coverage returns the IDs of the highlights covering wordIndex, in the
// order they were added. The returned slice must not be modified.
func (s *Store) Coverage(wordIndex int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.coverage[wordIndex]
}

// Snapshot returns an immutable view of the current coverage, so a render
// pass sees one consistent set even while updates arrive.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		highlights: append([]Highlight(nil), s.highlights...),
		coverage:   s.coverage,
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.highlights {
		if s.highlights[i].ID == id {
			return i
		}
	}
	return -1
}

// rebuild recomputes the coverage map (caller must hold the write lock).
// A fresh map is built so snapshots taken earlier stay valid.
func (s *Store) rebuild() {
	coverage := make(map[int][]string)
	for _, h := range s.highlights {
		for i := h.StartWordIndex; i <= h.EndWordIndex; i++ {
			coverage[i] = append(coverage[i], h.ID)
		}
	}
	s.coverage = coverage
}

// Snapshot is a point-in-time copy of a Store.
type Snapshot struct {
	highlights []Highlight
	coverage   map[int][]string
}

// Coverage returns the IDs covering wordIndex in insertion order.
func (s Snapshot) Coverage(wordIndex int) []string {
	return s.coverage[wordIndex]
}

// Highlights returns the highlights of the snapshot in insertion order.
func (s Snapshot) Highlights() []Highlight {
	return s.highlights
}
