package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"civicboard/internal/activity"
	"civicboard/internal/models"
	"civicboard/internal/notify"
	"civicboard/internal/sanitize"
	"civicboard/internal/store"
)

// EventService handles event and attendee business logic. Attendee
// mutations keep the owning event's registration count in step.
type EventService struct {
	events    *store.Store[*models.Event]
	attendees *store.Store[*models.Attendee]
	notifier  *notify.Notifier
	feed      *activity.Feed
}

// NewEventService creates a new event service
func NewEventService(events *store.Store[*models.Event], attendees *store.Store[*models.Attendee], notifier *notify.Notifier, feed *activity.Feed) *EventService {
	return &EventService{
		events:    events,
		attendees: attendees,
		notifier:  notifier,
		feed:      feed,
	}
}

// ListEvents returns all events
func (s *EventService) ListEvents() []*models.Event {
	return s.events.All()
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(id int) (*models.Event, error) {
	event, ok := s.events.Get(id)
	if !ok {
		return nil, &NotFoundError{Resource: "event", ID: id}
	}
	return event, nil
}

// SearchEvents returns events matching the query
func (s *EventService) SearchEvents(query string) []*models.Event {
	return s.events.Search(query)
}

// CreateEvent validates the request and appends a new upcoming event
func (s *EventService) CreateEvent(req *CreateEventRequest) (*models.Event, error) {
	date, err := req.Validate()
	if err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	now := time.Now().UTC()
	event := &models.Event{
		Title:     req.Title,
		Type:      req.Type,
		Date:      date,
		Location:  req.Location,
		Capacity:  req.Capacity,
		Status:    models.EventStatusUpcoming,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := event.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	created, err := s.events.Create(event)
	if err != nil {
		s.notifier.Error("Could not save event: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Event created successfully!")
	s.feed.Record("events", "create", fmt.Sprintf("Event %q scheduled", created.Title))
	return created, nil
}

// UpdateEvent merges the provided fields over the existing event
func (s *EventService) UpdateEvent(id int, req *UpdateEventRequest) (*models.Event, error) {
	existing, ok := s.events.Get(id)
	if !ok {
		s.notifier.Error("Event not found!")
		return nil, &NotFoundError{Resource: "event", ID: id}
	}

	updated := *existing
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			s.notifier.Error("Invalid event date")
			return nil, &ValidationError{Message: "invalid date: use YYYY-MM-DD"}
		}
		updated.Date = date
	}
	if req.Location != nil {
		updated.Location = *req.Location
	}
	if req.Capacity != nil {
		updated.Capacity = *req.Capacity
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := sanitize.CheckName("event title", updated.Title); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := updated.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.events.Replace(id, &updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Event not found!")
			return nil, &NotFoundError{Resource: "event", ID: id}
		}
		s.notifier.Error("Could not save event: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Event updated successfully!")
	if updated.OverCapacity() {
		s.notifier.Warning(fmt.Sprintf("Event %q is over capacity", updated.Title))
	}
	s.feed.Record("events", "update", fmt.Sprintf("Event %q updated", updated.Title))
	return &updated, nil
}

// ChangeEventStatus completes or cancels an event
func (s *EventService) ChangeEventStatus(id int, target models.EventStatus) (*models.Event, error) {
	existing, ok := s.events.Get(id)
	if !ok {
		s.notifier.Error("Event not found!")
		return nil, &NotFoundError{Resource: "event", ID: id}
	}

	if !target.ValidStatus() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status: %q", target)}
	}
	if !existing.Status.CanTransitionTo(target) {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("event cannot move from %s to %s", existing.Status, target),
		}
	}

	updated := *existing
	updated.Status = target
	updated.UpdatedAt = time.Now().UTC()

	if err := s.events.Replace(id, &updated); err != nil {
		s.notifier.Error("Could not save event: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success(fmt.Sprintf("Event marked %s", target))
	s.feed.Record("events", "status", fmt.Sprintf("Event %q is now %s", updated.Title, target))
	return &updated, nil
}

// DeleteEvent removes an event; upcoming events with registrations are
// protected and require the force flag
func (s *EventService) DeleteEvent(id int, force bool) error {
	err := s.events.Delete(id, force)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Event not found!")
			return &NotFoundError{Resource: "event", ID: id}
		}
		if errors.Is(err, store.ErrProtected) {
			s.notifier.Warning("This event has registrations; confirm again to delete it")
			return &ProtectedError{Resource: "event", ID: id}
		}
		s.notifier.Error("Could not delete event: " + err.Error())
		return &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Event deleted")
	s.feed.Record("events", "delete", fmt.Sprintf("Event %d deleted", id))
	return nil
}

// ListAttendees returns the attendees registered for one event
func (s *EventService) ListAttendees(eventID int) ([]*models.Attendee, error) {
	if _, ok := s.events.Get(eventID); !ok {
		return nil, &NotFoundError{Resource: "event", ID: eventID}
	}

	var result []*models.Attendee
	for _, attendee := range s.attendees.All() {
		if attendee.EventID == eventID {
			result = append(result, attendee)
		}
	}
	return result, nil
}

// AddAttendee registers a person for an event and bumps the event's
// registration count. Going past capacity is allowed but flagged.
func (s *EventService) AddAttendee(eventID int, req *AddAttendeeRequest) (*models.Attendee, error) {
	event, ok := s.events.Get(eventID)
	if !ok {
		s.notifier.Error("Event not found!")
		return nil, &NotFoundError{Resource: "event", ID: eventID}
	}
	if event.Status != models.EventStatusUpcoming {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("cannot register for a %s event", event.Status),
		}
	}

	if err := req.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	now := time.Now().UTC()
	attendee := &models.Attendee{
		EventID:   eventID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    models.AttendeeStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := attendee.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	created, err := s.attendees.Create(attendee)
	if err != nil {
		s.notifier.Error("Could not save attendee: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	if err := s.adjustRegistrations(eventID, 1); err != nil {
		// Undo the registration so the attendee list and the event's
		// count cannot diverge
		if delErr := s.attendees.Delete(created.ID, true); delErr != nil {
			log.Printf("ERROR: failed to remove attendee %d after count update failed: %v", created.ID, delErr)
		}
		return nil, err
	}

	s.notifier.Success("Attendee registered successfully!")
	s.feed.Record("events", "register", fmt.Sprintf("%s registered for %q", created.Name, event.Title))
	return created, nil
}

// UpdateAttendee merges fields and drives the registration status workflow.
// Cancelling frees the event slot; re-activating a cancelled registration
// takes it again.
func (s *EventService) UpdateAttendee(id int, req *UpdateAttendeeRequest) (*models.Attendee, error) {
	existing, ok := s.attendees.Get(id)
	if !ok {
		s.notifier.Error("Attendee not found!")
		return nil, &NotFoundError{Resource: "attendee", ID: id}
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if req.Status != nil {
		target := *req.Status
		if !target.ValidStatus() {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid status: %q", target)}
		}
		if target != existing.Status && !existing.Status.CanTransitionTo(target) {
			return nil, &BusinessLogicError{
				Message: fmt.Sprintf("attendee cannot move from %s to %s", existing.Status, target),
			}
		}
		updated.Status = target
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := sanitize.CheckName("attendee name", updated.Name); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := updated.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.attendees.Replace(id, &updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Attendee not found!")
			return nil, &NotFoundError{Resource: "attendee", ID: id}
		}
		s.notifier.Error("Could not save attendee: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	// A status flip across the cancelled boundary moves the slot count
	if existing.Counted() && !updated.Counted() {
		if err := s.adjustRegistrations(updated.EventID, -1); err != nil {
			return nil, err
		}
	} else if !existing.Counted() && updated.Counted() {
		if err := s.adjustRegistrations(updated.EventID, 1); err != nil {
			return nil, err
		}
	}

	s.notifier.Success("Attendee updated successfully!")
	return &updated, nil
}

// DeleteAttendee removes a registration and frees the event slot when the
// attendee still held one. Checked-in attendees are protected.
func (s *EventService) DeleteAttendee(id int, force bool) error {
	existing, ok := s.attendees.Get(id)
	if !ok {
		s.notifier.Error("Attendee not found!")
		return &NotFoundError{Resource: "attendee", ID: id}
	}

	err := s.attendees.Delete(id, force)
	if err != nil {
		if errors.Is(err, store.ErrProtected) {
			s.notifier.Warning("This attendee is checked in; confirm again to delete")
			return &ProtectedError{Resource: "attendee", ID: id}
		}
		s.notifier.Error("Could not delete attendee: " + err.Error())
		return &StorageError{Message: err.Error()}
	}

	if existing.Counted() {
		if err := s.adjustRegistrations(existing.EventID, -1); err != nil {
			return err
		}
	}

	s.notifier.Success("Attendee removed")
	s.feed.Record("events", "unregister", fmt.Sprintf("Attendee %d removed", id))
	return nil
}

// adjustRegistrations moves an event's registration count by delta,
// clamping at zero, and warns when the event crosses capacity
func (s *EventService) adjustRegistrations(eventID, delta int) error {
	event, ok := s.events.Get(eventID)
	if !ok {
		// The attendee list can outlive its event when a forced delete
		// removed the event first; nothing to adjust then.
		return nil
	}

	updated := *event
	updated.Registrations += delta
	if updated.Registrations < 0 {
		updated.Registrations = 0
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.events.Replace(eventID, &updated); err != nil {
		s.notifier.Error("Could not update event registrations: " + err.Error())
		return &StorageError{Message: err.Error()}
	}

	if delta > 0 && updated.OverCapacity() {
		s.notifier.Warning(fmt.Sprintf("Event %q is over capacity (%d/%d)",
			updated.Title, updated.Registrations, updated.Capacity))
	}

	return nil
}

// Request types

// CreateEventRequest represents a request to schedule an event
type CreateEventRequest struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}

// Validate checks the request and parses the calendar date
func (r *CreateEventRequest) Validate() (time.Time, error) {
	if r.Title == "" {
		return time.Time{}, fmt.Errorf("title is required")
	}
	if err := sanitize.CheckName("event title", r.Title); err != nil {
		return time.Time{}, err
	}
	if err := sanitize.CheckName("event location", r.Location); err != nil {
		return time.Time{}, err
	}
	if r.Capacity <= 0 {
		return time.Time{}, fmt.Errorf("capacity must be greater than 0")
	}

	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: use YYYY-MM-DD")
	}
	return date, nil
}

// UpdateEventRequest represents a partial event update
type UpdateEventRequest struct {
	Title    *string `json:"title,omitempty"`
	Type     *string `json:"type,omitempty"`
	Date     *string `json:"date,omitempty"`
	Location *string `json:"location,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}

// AddAttendeeRequest represents a request to register an attendee
type AddAttendeeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks the request fields
func (r *AddAttendeeRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if err := sanitize.CheckName("attendee name", r.Name); err != nil {
		return err
	}
	return nil
}

// UpdateAttendeeRequest represents a partial attendee update
type UpdateAttendeeRequest struct {
	Name   *string                `json:"name,omitempty"`
	Email  *string                `json:"email,omitempty"`
	Phone  *string                `json:"phone,omitempty"`
	Status *models.AttendeeStatus `json:"status,omitempty"`
}
