// Package store implements the shared CRUD list view behind every dashboard
// module: an ordered in-memory record list kept synchronized with a
// versioned snapshot file. Each module configures one Store with its record
// type and snapshot; all mutation, search and persistence semantics live
// here once instead of being repeated per module.
//
// The in-memory list is the source of truth. Every mutation persists a full
// snapshot before it commits: if the write fails, the mutation is rolled
// back and the store reports a persistence error, so memory and disk never
// silently diverge.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"civicboard/internal/snapshot"
)

// Record is the contract every module entity satisfies
type Record interface {
	// RecordID returns the unique ID within the owning list
	RecordID() int
	// SetRecordID assigns the ID on create
	SetRecordID(id int)
	// DisplayFields returns the fields matched by Search
	DisplayFields() []string
	// IsProtected reports whether deletion requires explicit confirmation
	IsProtected() bool
}

// Sentinel errors returned by store operations
var (
	ErrNotFound  = errors.New("record not found")
	ErrProtected = errors.New("record is protected and requires confirmation to delete")
	ErrPersist   = errors.New("failed to persist snapshot")
)

// Store keeps an ordered list of records synchronized with a snapshot file
type Store[T Record] struct {
	mu         sync.Mutex
	name       string
	records    []T
	nextID     int
	generation uint64
	file       *snapshot.File[[]T]
}

// New creates a store for the named module. A nil snapshot file disables
// persistence; all other semantics are unchanged.
func New[T Record](name string, file *snapshot.File[[]T]) *Store[T] {
	return &Store[T]{
		name:   name,
		nextID: 1,
		file:   file,
	}
}

// Name returns the module name the store belongs to
func (s *Store[T]) Name() string { return s.name }

// Adopt replaces the store contents with loader-provided records and
// recomputes the next ID as max(existing)+1. Adopt does not persist: the
// loader may be handing back the snapshot's own contents.
func (s *Store[T]) Adopt(records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]T(nil), records...)
	s.nextID = 1
	for _, rec := range s.records {
		if rec.RecordID() >= s.nextID {
			s.nextID = rec.RecordID() + 1
		}
	}
	s.generation++
}

// All returns a copy of the record list in insertion order
func (s *Store[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.records...)
}

// Count returns the number of records
func (s *Store[T]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Generation returns the mutation counter. Callers assembling results
// across async boundaries compare generations and discard stale work.
func (s *Store[T]) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Get returns the record with the given ID
func (s *Store[T]) Get(id int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Create assigns a fresh ID, appends the record and persists. On a persist
// failure the record is not added.
func (s *Store[T]) Create(rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.SetRecordID(s.nextID)
	candidate := append(append([]T(nil), s.records...), rec)

	if err := s.persist(candidate); err != nil {
		var zero T
		return zero, err
	}

	s.records = candidate
	s.nextID++
	s.generation++
	return rec, nil
}

// Replace swaps the record with the given ID for an updated copy and
// persists. The caller builds the merged record; fields it left untouched
// keep their previous values by construction.
func (s *Store[T]) Replace(id int, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, existing := range s.records {
		if existing.RecordID() == id {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrNotFound
	}

	rec.SetRecordID(id)
	candidate := append([]T(nil), s.records...)
	candidate[index] = rec

	if err := s.persist(candidate); err != nil {
		return err
	}

	s.records = candidate
	s.generation++
	return nil
}

// Delete removes the record with the given ID and persists. Protected
// records are only removed when force is set, mirroring the second
// confirmation the dashboard asks for. Deleting a missing ID returns
// ErrNotFound and leaves the list unchanged.
func (s *Store[T]) Delete(id int, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, existing := range s.records {
		if existing.RecordID() == id {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrNotFound
	}

	if s.records[index].IsProtected() && !force {
		return ErrProtected
	}

	candidate := append([]T(nil), s.records[:index]...)
	candidate = append(candidate, s.records[index+1:]...)

	if err := s.persist(candidate); err != nil {
		return err
	}

	s.records = candidate
	s.generation++
	return nil
}

// Search returns the records whose display fields contain the query,
// case-insensitively. A blank or whitespace-only query returns the full
// list, resetting the filter.
func (s *Store[T]) Search(query string) []T {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return s.All()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []T
	for _, rec := range s.records {
		for _, field := range rec.DisplayFields() {
			if strings.Contains(strings.ToLower(field), query) {
				matches = append(matches, rec)
				break
			}
		}
	}
	return matches
}

// persist writes the candidate list through to the snapshot file.
// Must be called with the lock held.
func (s *Store[T]) persist(candidate []T) error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Save(candidate); err != nil {
		return fmt.Errorf("%w for %s: %v", ErrPersist, s.name, err)
	}
	return nil
}
