package repository

import (
	"context"
	"fmt"

	"civicboard/internal/models"
)

type surveyRepository struct {
	db DB
}

// NewSurveyRepository creates a new survey repository
func NewSurveyRepository(db DB) SurveyRepository {
	return &surveyRepository{db: db}
}

// Create inserts a new survey
func (r *surveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	query := `
		INSERT INTO surveys (name, type, description, status, responses, completion_rate,
			avg_rating, launched_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		survey.Name,
		survey.Type,
		survey.Description,
		survey.Status,
		survey.Responses,
		survey.CompletionRate,
		survey.AvgRating,
		survey.LaunchedAt,
		survey.ClosedAt,
	).Scan(&survey.ID, &survey.CreatedAt, &survey.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create survey: %w", err)
	}

	return nil
}

// List retrieves all surveys ordered by ID
func (r *surveyRepository) List(ctx context.Context) ([]*models.Survey, error) {
	query := `
		SELECT id, name, type, description, status, responses, completion_rate,
			avg_rating, launched_at, closed_at, created_at, updated_at
		FROM surveys
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer rows.Close()

	var surveys []*models.Survey
	for rows.Next() {
		survey := &models.Survey{}
		err := rows.Scan(
			&survey.ID,
			&survey.Name,
			&survey.Type,
			&survey.Description,
			&survey.Status,
			&survey.Responses,
			&survey.CompletionRate,
			&survey.AvgRating,
			&survey.LaunchedAt,
			&survey.ClosedAt,
			&survey.CreatedAt,
			&survey.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		surveys = append(surveys, survey)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate surveys: %w", err)
	}

	return surveys, nil
}
