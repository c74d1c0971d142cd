package models

import (
	"fmt"
	"time"
)

// EventStatus represents valid event statuses
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusUpcoming:  {EventStatusCompleted, EventStatusCancelled},
	EventStatusCompleted: {},
	EventStatusCancelled: {},
}

// Event represents a community event on the calendar
type Event struct {
	ID            int         `json:"id" db:"id"`
	Title         string      `json:"title" db:"title"`
	Type          string      `json:"type" db:"type"`
	Date          time.Time   `json:"date" db:"date"`
	Location      string      `json:"location" db:"location"`
	Capacity      int         `json:"capacity" db:"capacity"`
	Registrations int         `json:"registrations" db:"registrations"`
	Status        EventStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// RecordID returns the event's unique ID
func (e *Event) RecordID() int { return e.ID }

// SetRecordID assigns the event's unique ID
func (e *Event) SetRecordID(id int) { e.ID = id }

// DisplayFields returns the fields searched by the list view
func (e *Event) DisplayFields() []string {
	return []string{e.Title, e.Type, e.Location, string(e.Status)}
}

// ValidStatus checks if the status is one of the allowed values
func (s EventStatus) ValidStatus() bool {
	_, ok := eventTransitions[s]
	return ok
}

// CanTransitionTo checks whether the status may move to the target status
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Validate checks if the event fields are valid
func (e *Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if !e.Status.ValidStatus() {
		return fmt.Errorf("invalid status: %q", e.Status)
	}
	if e.Capacity <= 0 {
		return fmt.Errorf("capacity must be greater than 0")
	}
	if e.Registrations < 0 {
		return fmt.Errorf("registrations must not be negative")
	}
	return nil
}

// OverCapacity reports whether registrations have exceeded capacity.
// Registrations past capacity are allowed but flagged to the operator.
func (e *Event) OverCapacity() bool {
	return e.Registrations > e.Capacity
}

// IsProtected reports whether deleting the event needs extra confirmation
func (e *Event) IsProtected() bool {
	return e.Status == EventStatusUpcoming && e.Registrations > 0
}
