package repository

import (
	"context"
	"fmt"

	"civicboard/internal/models"
)

type eventRepository struct {
	db DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db DB) EventRepository {
	return &eventRepository{db: db}
}

// CreateEvent inserts a new event
func (r *eventRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (title, type, date, location, capacity, registrations, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		event.Title,
		event.Type,
		event.Date,
		event.Location,
		event.Capacity,
		event.Registrations,
		event.Status,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// ListEvents retrieves all events ordered by ID
func (r *eventRepository) ListEvents(ctx context.Context) ([]*models.Event, error) {
	query := `
		SELECT id, title, type, date, location, capacity, registrations, status,
			created_at, updated_at
		FROM events
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Type,
			&event.Date,
			&event.Location,
			&event.Capacity,
			&event.Registrations,
			&event.Status,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// CreateAttendee inserts a new attendee
func (r *eventRepository) CreateAttendee(ctx context.Context, attendee *models.Attendee) error {
	query := `
		INSERT INTO attendees (event_id, name, email, phone, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		attendee.EventID,
		attendee.Name,
		attendee.Email,
		attendee.Phone,
		attendee.Status,
	).Scan(&attendee.ID, &attendee.CreatedAt, &attendee.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create attendee: %w", err)
	}

	return nil
}

// ListAttendees retrieves all attendees ordered by ID
func (r *eventRepository) ListAttendees(ctx context.Context) ([]*models.Attendee, error) {
	query := `
		SELECT id, event_id, name, email, phone, status, created_at, updated_at
		FROM attendees
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	defer rows.Close()

	var attendees []*models.Attendee
	for rows.Next() {
		attendee := &models.Attendee{}
		err := rows.Scan(
			&attendee.ID,
			&attendee.EventID,
			&attendee.Name,
			&attendee.Email,
			&attendee.Phone,
			&attendee.Status,
			&attendee.CreatedAt,
			&attendee.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		attendees = append(attendees, attendee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendees: %w", err)
	}

	return attendees, nil
}
