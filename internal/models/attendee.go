package models

import (
	"fmt"
	"strings"
	"time"
)

// AttendeeStatus represents valid attendee statuses
type AttendeeStatus string

const (
	AttendeeStatusPending   AttendeeStatus = "pending"
	AttendeeStatusConfirmed AttendeeStatus = "confirmed"
	AttendeeStatusCheckedIn AttendeeStatus = "checked-in"
	AttendeeStatusCancelled AttendeeStatus = "cancelled"
)

// attendeeTransitions requires confirmation before check-in; a cancelled
// registration may re-enter as pending.
var attendeeTransitions = map[AttendeeStatus][]AttendeeStatus{
	AttendeeStatusPending:   {AttendeeStatusConfirmed, AttendeeStatusCancelled},
	AttendeeStatusConfirmed: {AttendeeStatusCheckedIn, AttendeeStatusCancelled},
	AttendeeStatusCheckedIn: {},
	AttendeeStatusCancelled: {AttendeeStatusPending},
}

// Attendee represents a person registered for an event
type Attendee struct {
	ID        int            `json:"id" db:"id"`
	EventID   int            `json:"event_id" db:"event_id"`
	Name      string         `json:"name" db:"name"`
	Email     string         `json:"email" db:"email"`
	Phone     string         `json:"phone" db:"phone"`
	Status    AttendeeStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// RecordID returns the attendee's unique ID
func (a *Attendee) RecordID() int { return a.ID }

// SetRecordID assigns the attendee's unique ID
func (a *Attendee) SetRecordID(id int) { a.ID = id }

// DisplayFields returns the fields searched by the list view
func (a *Attendee) DisplayFields() []string {
	return []string{a.Name, a.Email, a.Phone, string(a.Status)}
}

// ValidStatus checks if the status is one of the allowed values
func (s AttendeeStatus) ValidStatus() bool {
	_, ok := attendeeTransitions[s]
	return ok
}

// CanTransitionTo checks whether the status may move to the target status
func (s AttendeeStatus) CanTransitionTo(target AttendeeStatus) bool {
	for _, allowed := range attendeeTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Validate checks if the attendee fields are valid
func (a *Attendee) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("attendee name is required")
	}
	if a.EventID <= 0 {
		return fmt.Errorf("event ID is required")
	}
	if a.Email != "" && !strings.Contains(a.Email, "@") {
		return fmt.Errorf("invalid email address")
	}
	if !a.Status.ValidStatus() {
		return fmt.Errorf("invalid status: %q", a.Status)
	}
	return nil
}

// IsProtected reports whether deleting the attendee needs extra confirmation
func (a *Attendee) IsProtected() bool {
	return a.Status == AttendeeStatusCheckedIn
}

// Counted reports whether the attendee occupies a registration slot on the
// owning event. Cancelled registrations free their slot.
func (a *Attendee) Counted() bool {
	return a.Status != AttendeeStatusCancelled
}
