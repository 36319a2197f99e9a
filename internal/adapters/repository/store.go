// Package repository loads and holds the reference dataset: the elite
// game table and the per-player style-vector table. Both are read fully
// into memory at startup and never mutated afterwards, so the store
// needs no locking.
package repository

import (
	"github.com/shatranj-dev/shatranj/internal/domain/model"
)

// Store is the in-memory reference dataset.
type Store struct {
	games   []model.GameRecord
	vectors []model.StyleVector
}

// NewStore wraps already-loaded reference data. Used by tests and by
// callers that build reference data programmatically.
func NewStore(games []model.GameRecord, vectors []model.StyleVector) *Store {
	return &Store{games: games, vectors: vectors}
}

// Games returns the full reference game table. Callers must treat the
// slice as read-only.
func (s *Store) Games() []model.GameRecord {
	return s.games
}

// StyleVectors returns the reference style-vector table in file order.
// Callers must treat the slice as read-only.
func (s *Store) StyleVectors() []model.StyleVector {
	return s.vectors
}

// GameCount returns the raw reference game count.
func (s *Store) GameCount() int {
	return len(s.games)
}

// PlayerCount returns the number of reference players.
func (s *Store) PlayerCount() int {
	return len(s.vectors)
}
