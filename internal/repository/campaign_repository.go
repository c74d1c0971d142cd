package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"civicboard/internal/models"
)

type campaignRepository struct {
	db DB
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// Create inserts a new campaign
func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	milestones, err := json.Marshal(campaign.Milestones)
	if err != nil {
		return fmt.Errorf("failed to marshal milestones: %w", err)
	}

	query := `
		INSERT INTO campaigns (name, description, type, status, start_date, end_date,
			budget, budget_allocated, budget_used, personnel, equipment, milestones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRowContext(
		ctx,
		query,
		campaign.Name,
		campaign.Description,
		campaign.Type,
		campaign.Status,
		campaign.StartDate,
		campaign.EndDate,
		campaign.Budget,
		campaign.BudgetAllocated,
		campaign.BudgetUsed,
		campaign.Personnel,
		campaign.Equipment,
		milestones,
	).Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

// List retrieves all campaigns ordered by ID
func (r *campaignRepository) List(ctx context.Context) ([]*models.Campaign, error) {
	query := `
		SELECT id, name, description, type, status, start_date, end_date,
			budget, budget_allocated, budget_used, personnel, equipment, milestones,
			created_at, updated_at
		FROM campaigns
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		campaign := &models.Campaign{}
		var milestones []byte
		err := rows.Scan(
			&campaign.ID,
			&campaign.Name,
			&campaign.Description,
			&campaign.Type,
			&campaign.Status,
			&campaign.StartDate,
			&campaign.EndDate,
			&campaign.Budget,
			&campaign.BudgetAllocated,
			&campaign.BudgetUsed,
			&campaign.Personnel,
			&campaign.Equipment,
			&milestones,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		if len(milestones) > 0 {
			if err := json.Unmarshal(milestones, &campaign.Milestones); err != nil {
				return nil, fmt.Errorf("failed to unmarshal milestones: %w", err)
			}
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaigns: %w", err)
	}

	return campaigns, nil
}
