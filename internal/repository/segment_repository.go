package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"civicboard/internal/models"
)

type segmentRepository struct {
	db DB
}

// NewSegmentRepository creates a new segment repository
func NewSegmentRepository(db DB) SegmentRepository {
	return &segmentRepository{db: db}
}

// Create inserts a new segment
func (r *segmentRepository) Create(ctx context.Context, segment *models.Segment) error {
	tags, err := json.Marshal(segment.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	criteria, err := json.Marshal(segment.Criteria)
	if err != nil {
		return fmt.Errorf("failed to marshal criteria: %w", err)
	}

	query := `
		INSERT INTO segments (name, type, size, estimated_size, status, engagement_rate, tags, criteria)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRowContext(
		ctx,
		query,
		segment.Name,
		segment.Type,
		segment.Size,
		segment.EstimatedSize,
		segment.Status,
		segment.EngagementRate,
		tags,
		criteria,
	).Scan(&segment.ID, &segment.CreatedAt, &segment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create segment: %w", err)
	}

	return nil
}

// List retrieves all segments ordered by ID
func (r *segmentRepository) List(ctx context.Context) ([]*models.Segment, error) {
	query := `
		SELECT id, name, type, size, estimated_size, status, engagement_rate, tags, criteria,
			created_at, updated_at
		FROM segments
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}
	defer rows.Close()

	var segments []*models.Segment
	for rows.Next() {
		segment := &models.Segment{}
		var tags, criteria []byte
		err := rows.Scan(
			&segment.ID,
			&segment.Name,
			&segment.Type,
			&segment.Size,
			&segment.EstimatedSize,
			&segment.Status,
			&segment.EngagementRate,
			&tags,
			&criteria,
			&segment.CreatedAt,
			&segment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &segment.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
			}
		}
		if len(criteria) > 0 {
			if err := json.Unmarshal(criteria, &segment.Criteria); err != nil {
				return nil, fmt.Errorf("failed to unmarshal criteria: %w", err)
			}
		}
		segments = append(segments, segment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate segments: %w", err)
	}

	return segments, nil
}
