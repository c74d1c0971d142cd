package models

import (
	"fmt"
	"time"
)

// CampaignStatus represents valid campaign statuses
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusArchived  CampaignStatus = "archived"
)

// campaignTransitions maps each status to the statuses it may move to.
// Archived is terminal.
var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusDraft:     {CampaignStatusActive, CampaignStatusArchived},
	CampaignStatusActive:    {CampaignStatusCompleted, CampaignStatusArchived},
	CampaignStatusCompleted: {CampaignStatusArchived},
	CampaignStatusArchived:  {},
}

// Milestone represents a dated checkpoint in a campaign plan
type Milestone struct {
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// Campaign represents a public outreach campaign
type Campaign struct {
	ID              int            `json:"id" db:"id"`
	Name            string         `json:"name" db:"name"`
	Description     string         `json:"description" db:"description"`
	Type            string         `json:"type" db:"type"`
	Status          CampaignStatus `json:"status" db:"status"`
	StartDate       time.Time      `json:"start_date" db:"start_date"`
	EndDate         time.Time      `json:"end_date" db:"end_date"`
	Budget          float64        `json:"budget" db:"budget"`
	BudgetAllocated float64        `json:"budget_allocated" db:"budget_allocated"`
	BudgetUsed      float64        `json:"budget_used" db:"budget_used"`
	Personnel       int            `json:"personnel" db:"personnel"`
	Equipment       int            `json:"equipment" db:"equipment"`
	Milestones      []Milestone    `json:"milestones,omitempty"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// RecordID returns the campaign's unique ID
func (c *Campaign) RecordID() int { return c.ID }

// SetRecordID assigns the campaign's unique ID
func (c *Campaign) SetRecordID(id int) { c.ID = id }

// DisplayFields returns the fields searched by the list view
func (c *Campaign) DisplayFields() []string {
	return []string{c.Name, c.Description, c.Type, string(c.Status)}
}

// ValidStatus checks if the status is one of the allowed values
func (s CampaignStatus) ValidStatus() bool {
	_, ok := campaignTransitions[s]
	return ok
}

// CanTransitionTo checks whether the status may move to the target status
func (s CampaignStatus) CanTransitionTo(target CampaignStatus) bool {
	for _, allowed := range campaignTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Validate checks if the campaign fields are valid
func (c *Campaign) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("campaign name is required")
	}
	if !c.Status.ValidStatus() {
		return fmt.Errorf("invalid status: %q", c.Status)
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("end date must not be earlier than start date")
	}
	if c.Budget < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	if c.Personnel < 0 {
		return fmt.Errorf("personnel must not be negative")
	}
	if c.Equipment < 0 {
		return fmt.Errorf("equipment must not be negative")
	}
	return nil
}

// OverBudget reports whether spending has exceeded the planned budget.
// Spending past the budget is allowed but flagged to the operator.
func (c *Campaign) OverBudget() bool {
	return c.Budget > 0 && c.BudgetUsed > c.Budget
}

// IsProtected reports whether deleting the campaign needs extra confirmation
func (c *Campaign) IsProtected() bool {
	return c.Status == CampaignStatusActive
}
