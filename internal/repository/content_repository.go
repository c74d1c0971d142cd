package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"civicboard/internal/models"
)

type contentRepository struct {
	db DB
}

// NewContentRepository creates a new content repository
func NewContentRepository(db DB) ContentRepository {
	return &contentRepository{db: db}
}

// Create inserts a new content item
func (r *contentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		INSERT INTO content_items (name, category, size_bytes, status, version, tags, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRowContext(
		ctx,
		query,
		item.Name,
		item.Category,
		item.SizeBytes,
		item.Status,
		item.Version,
		tags,
		item.Description,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create content item: %w", err)
	}

	return nil
}

// List retrieves all content items ordered by ID
func (r *contentRepository) List(ctx context.Context) ([]*models.ContentItem, error) {
	query := `
		SELECT id, name, category, size_bytes, status, version, tags, description,
			created_at, updated_at
		FROM content_items
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		item := &models.ContentItem{}
		var tags []byte
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&item.SizeBytes,
			&item.Status,
			&item.Version,
			&tags,
			&item.Description,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &item.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
			}
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate content items: %w", err)
	}

	return items, nil
}
