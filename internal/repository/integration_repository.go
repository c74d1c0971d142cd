package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"civicboard/internal/models"
)

type integrationRepository struct {
	db DB
}

// NewIntegrationRepository creates a new integration repository
func NewIntegrationRepository(db DB) IntegrationRepository {
	return &integrationRepository{db: db}
}

// Create inserts a new integration
func (r *integrationRepository) Create(ctx context.Context, integration *models.Integration) error {
	dataPoints, err := json.Marshal(integration.DataPoints)
	if err != nil {
		return fmt.Errorf("failed to marshal data points: %w", err)
	}

	query := `
		INSERT INTO integrations (name, type, system, data_points, status, last_sync, last_error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRowContext(
		ctx,
		query,
		integration.Name,
		integration.Type,
		integration.System,
		dataPoints,
		integration.Status,
		integration.LastSync,
		integration.LastError,
	).Scan(&integration.ID, &integration.CreatedAt, &integration.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create integration: %w", err)
	}

	return nil
}

// List retrieves all integrations ordered by ID
func (r *integrationRepository) List(ctx context.Context) ([]*models.Integration, error) {
	query := `
		SELECT id, name, type, system, data_points, status, last_sync, last_error,
			created_at, updated_at
		FROM integrations
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}
	defer rows.Close()

	var integrations []*models.Integration
	for rows.Next() {
		integration := &models.Integration{}
		var dataPoints []byte
		err := rows.Scan(
			&integration.ID,
			&integration.Name,
			&integration.Type,
			&integration.System,
			&dataPoints,
			&integration.Status,
			&integration.LastSync,
			&integration.LastError,
			&integration.CreatedAt,
			&integration.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan integration: %w", err)
		}
		if len(dataPoints) > 0 {
			if err := json.Unmarshal(dataPoints, &integration.DataPoints); err != nil {
				return nil, fmt.Errorf("failed to unmarshal data points: %w", err)
			}
		}
		integrations = append(integrations, integration)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate integrations: %w", err)
	}

	return integrations, nil
}

// UpdateSyncResult records the outcome of a sync run
func (r *integrationRepository) UpdateSyncResult(ctx context.Context, id int, status models.IntegrationStatus, lastError string) error {
	query := `
		UPDATE integrations
		SET status = $1, last_error = $2, last_sync = CASE WHEN $1 = 'active' THEN NOW() ELSE last_sync END,
			updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, lastError, id)
	if err != nil {
		return fmt.Errorf("failed to update sync result: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check sync update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("integration %d not found", id)
	}

	return nil
}
