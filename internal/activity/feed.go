// Package activity implements the dashboard's live activity strip: a
// bounded feed of recent happenings, a simulator that stands in for real
// telemetry when no backend is wired up, and a WebSocket hub pushing new
// entries to connected dashboards.
package activity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one item on the activity strip
type Entry struct {
	ID      string    `json:"id"`
	Module  string    `json:"module"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Feed is a bounded, newest-last list of activity entries
type Feed struct {
	mu        sync.Mutex
	entries   []Entry
	capacity  int
	broadcast func(Entry)
}

const defaultFeedCapacity = 100

// NewFeed creates a feed holding at most capacity entries
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = defaultFeedCapacity
	}
	return &Feed{capacity: capacity}
}

// SetBroadcast registers a callback invoked for every recorded entry
func (f *Feed) SetBroadcast(fn func(Entry)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcast = fn
}

// Record appends an entry, dropping the oldest when the feed is full
func (f *Feed) Record(module, kind, message string) Entry {
	entry := Entry{
		ID:      uuid.NewString(),
		Module:  module,
		Kind:    kind,
		Message: message,
		At:      time.Now().UTC(),
	}

	f.mu.Lock()
	f.entries = append(f.entries, entry)
	if len(f.entries) > f.capacity {
		f.entries = f.entries[len(f.entries)-f.capacity:]
	}
	broadcast := f.broadcast
	f.mu.Unlock()

	if broadcast != nil {
		broadcast(entry)
	}

	return entry
}

// Recent returns up to limit entries, newest first
func (f *Feed) Recent(limit int) []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	if limit <= 0 || limit > len(f.entries) {
		limit = len(f.entries)
	}

	recent := make([]Entry, 0, limit)
	for i := len(f.entries) - 1; i >= len(f.entries)-limit; i-- {
		recent = append(recent, f.entries[i])
	}
	return recent
}
