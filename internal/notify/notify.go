// Package notify implements the shared operator notification feed. Every
// mutation outcome lands here instead of in per-module toast code. The feed
// is bounded: once full, the oldest entry is dropped so rapid-fire failures
// cannot stack without limit.
package notify

import (
	"sync"
	"time"
)

// Kind represents the severity of a notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Notification is a single transient operator-facing message
type Notification struct {
	ID      int       `json:"id"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier is a bounded in-memory notification queue. Entries expire after
// a fixed time-to-live, mirroring an auto-dismissing toast.
type Notifier struct {
	mu       sync.Mutex
	entries  []Notification
	capacity int
	ttl      time.Duration
	nextID   int
	now      func() time.Time
}

const (
	defaultCapacity = 50
	defaultTTL      = 5 * time.Second
)

// NewNotifier creates a notifier with the given capacity and time-to-live.
// Zero values select the defaults.
func NewNotifier(capacity int, ttl time.Duration) *Notifier {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Notifier{
		capacity: capacity,
		ttl:      ttl,
		nextID:   1,
		now:      time.Now,
	}
}

// Notify appends a notification, dropping the oldest entry when full
func (n *Notifier) Notify(kind Kind, message string) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry := Notification{
		ID:      n.nextID,
		Kind:    kind,
		Message: message,
		At:      n.now(),
	}
	n.nextID++

	n.entries = append(n.entries, entry)
	if len(n.entries) > n.capacity {
		n.entries = n.entries[len(n.entries)-n.capacity:]
	}

	return entry
}

// Success records a success notification
func (n *Notifier) Success(message string) { n.Notify(KindSuccess, message) }

// Error records an error notification
func (n *Notifier) Error(message string) { n.Notify(KindError, message) }

// Warning records a warning notification
func (n *Notifier) Warning(message string) { n.Notify(KindWarning, message) }

// Info records an info notification
func (n *Notifier) Info(message string) { n.Notify(KindInfo, message) }

// Active returns the notifications that have not yet expired, oldest first
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	cutoff := n.now().Add(-n.ttl)
	active := make([]Notification, 0, len(n.entries))
	for _, entry := range n.entries {
		if entry.At.After(cutoff) {
			active = append(active, entry)
		}
	}

	// Expired entries are pruned on read so the buffer only holds live toasts
	n.entries = append(n.entries[:0], active...)

	return active
}

// Dismiss removes a notification by ID before it expires
func (n *Notifier) Dismiss(id int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, entry := range n.entries {
		if entry.ID == id {
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
			return true
		}
	}
	return false
}
