// Package repository provides the optional Postgres source behind the
// dashboard loaders. The database is an upstream of record, not the working
// store: the API loads from it at startup when configured and otherwise
// falls back to snapshots or seed data.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"civicboard/internal/models"
)

// CampaignRepository defines campaign data access operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	List(ctx context.Context) ([]*models.Campaign, error)
}

// ContentRepository defines content item data access operations
type ContentRepository interface {
	Create(ctx context.Context, item *models.ContentItem) error
	List(ctx context.Context) ([]*models.ContentItem, error)
}

// SegmentRepository defines segment data access operations
type SegmentRepository interface {
	Create(ctx context.Context, segment *models.Segment) error
	List(ctx context.Context) ([]*models.Segment, error)
}

// EventRepository defines event and attendee data access operations
type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	ListEvents(ctx context.Context) ([]*models.Event, error)
	CreateAttendee(ctx context.Context, attendee *models.Attendee) error
	ListAttendees(ctx context.Context) ([]*models.Attendee, error)
}

// SurveyRepository defines survey data access operations
type SurveyRepository interface {
	Create(ctx context.Context, survey *models.Survey) error
	List(ctx context.Context) ([]*models.Survey, error)
}

// IntegrationRepository defines integration data access operations
type IntegrationRepository interface {
	Create(ctx context.Context, integration *models.Integration) error
	List(ctx context.Context) ([]*models.Integration, error)
	UpdateSyncResult(ctx context.Context, id int, status models.IntegrationStatus, lastError string) error
}

// DB is the subset of *sql.DB the repositories need, allowing transactions
// or mocks to be passed in
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// schema creates every table the dashboard suite reads from
var schema = []string{
	`CREATE TABLE IF NOT EXISTS campaigns (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		budget DOUBLE PRECISION NOT NULL DEFAULT 0,
		budget_allocated DOUBLE PRECISION NOT NULL DEFAULT 0,
		budget_used DOUBLE PRECISION NOT NULL DEFAULT 0,
		personnel INTEGER NOT NULL DEFAULT 0,
		equipment INTEGER NOT NULL DEFAULT 0,
		milestones JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS content_items (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		size_bytes BIGINT NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		tags JSONB NOT NULL DEFAULT '[]',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS segments (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		estimated_size INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		engagement_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		tags JSONB NOT NULL DEFAULT '[]',
		criteria JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		capacity INTEGER NOT NULL,
		registrations INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS attendees (
		id SERIAL PRIMARY KEY,
		event_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS surveys (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		responses INTEGER NOT NULL DEFAULT 0,
		completion_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		avg_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		launched_at TIMESTAMPTZ,
		closed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS integrations (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		system TEXT NOT NULL,
		data_points JSONB NOT NULL DEFAULT '[]',
		status TEXT NOT NULL,
		last_sync TIMESTAMPTZ,
		last_error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates any missing tables
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
