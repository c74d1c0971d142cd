package service

import (
	"errors"
	"fmt"
	"time"

	"civicboard/internal/activity"
	"civicboard/internal/models"
	"civicboard/internal/notify"
	"civicboard/internal/sanitize"
	"civicboard/internal/store"
)

// dateLayout is the calendar-date format the dashboard forms submit
const dateLayout = "2006-01-02"

// CampaignService handles campaign planning business logic
type CampaignService struct {
	campaigns *store.Store[*models.Campaign]
	notifier  *notify.Notifier
	feed      *activity.Feed
}

// NewCampaignService creates a new campaign service
func NewCampaignService(campaigns *store.Store[*models.Campaign], notifier *notify.Notifier, feed *activity.Feed) *CampaignService {
	return &CampaignService{
		campaigns: campaigns,
		notifier:  notifier,
		feed:      feed,
	}
}

// ListCampaigns returns all campaigns
func (s *CampaignService) ListCampaigns() []*models.Campaign {
	return s.campaigns.All()
}

// GetCampaign retrieves a campaign by ID
func (s *CampaignService) GetCampaign(id int) (*models.Campaign, error) {
	campaign, ok := s.campaigns.Get(id)
	if !ok {
		return nil, &NotFoundError{Resource: "campaign", ID: id}
	}
	return campaign, nil
}

// SearchCampaigns returns campaigns matching the query; a blank query
// returns the full list
func (s *CampaignService) SearchCampaigns(query string) []*models.Campaign {
	return s.campaigns.Search(query)
}

// CreateCampaign validates the request and appends a new draft campaign
func (s *CampaignService) CreateCampaign(req *CreateCampaignRequest) (*models.Campaign, error) {
	start, end, err := req.Validate()
	if err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	now := time.Now().UTC()
	campaign := &models.Campaign{
		Name:            req.Name,
		Description:     req.Description,
		Type:            req.Type,
		Status:          models.CampaignStatusDraft,
		StartDate:       start,
		EndDate:         end,
		Budget:          req.Budget,
		BudgetAllocated: req.BudgetAllocated,
		BudgetUsed:      req.BudgetUsed,
		Personnel:       req.Personnel,
		Equipment:       req.Equipment,
		Milestones:      req.Milestones,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := campaign.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	created, err := s.campaigns.Create(campaign)
	if err != nil {
		s.notifier.Error("Could not save campaign: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Campaign created successfully!")
	s.feed.Record("campaigns", "create", fmt.Sprintf("Campaign %q created", created.Name))
	return created, nil
}

// UpdateCampaign merges the provided fields over the existing campaign.
// Fields absent from the request keep their previous values.
func (s *CampaignService) UpdateCampaign(id int, req *UpdateCampaignRequest) (*models.Campaign, error) {
	existing, ok := s.campaigns.Get(id)
	if !ok {
		s.notifier.Error("Campaign not found!")
		return nil, &NotFoundError{Resource: "campaign", ID: id}
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			s.notifier.Error("Invalid start date")
			return nil, &ValidationError{Message: "invalid start date: use YYYY-MM-DD"}
		}
		updated.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			s.notifier.Error("Invalid end date")
			return nil, &ValidationError{Message: "invalid end date: use YYYY-MM-DD"}
		}
		updated.EndDate = end
	}
	if req.Budget != nil {
		updated.Budget = *req.Budget
	}
	if req.BudgetAllocated != nil {
		updated.BudgetAllocated = *req.BudgetAllocated
	}
	if req.BudgetUsed != nil {
		updated.BudgetUsed = *req.BudgetUsed
	}
	if req.Personnel != nil {
		updated.Personnel = *req.Personnel
	}
	if req.Equipment != nil {
		updated.Equipment = *req.Equipment
	}
	if req.Milestones != nil {
		updated.Milestones = *req.Milestones
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := sanitize.CheckName("campaign name", updated.Name); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := sanitize.CheckDescription("campaign description", updated.Description); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := updated.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.campaigns.Replace(id, &updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Campaign not found!")
			return nil, &NotFoundError{Resource: "campaign", ID: id}
		}
		s.notifier.Error("Could not save campaign: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Campaign updated successfully!")
	if updated.OverBudget() {
		s.notifier.Warning(fmt.Sprintf("Campaign %q has spent past its budget", updated.Name))
	}
	s.feed.Record("campaigns", "update", fmt.Sprintf("Campaign %q updated", updated.Name))
	return &updated, nil
}

// ChangeCampaignStatus moves the campaign through its lifecycle, rejecting
// transitions the table does not allow
func (s *CampaignService) ChangeCampaignStatus(id int, target models.CampaignStatus) (*models.Campaign, error) {
	existing, ok := s.campaigns.Get(id)
	if !ok {
		s.notifier.Error("Campaign not found!")
		return nil, &NotFoundError{Resource: "campaign", ID: id}
	}

	if !target.ValidStatus() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status: %q", target)}
	}
	if !existing.Status.CanTransitionTo(target) {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("campaign cannot move from %s to %s", existing.Status, target),
		}
	}

	updated := *existing
	updated.Status = target
	updated.UpdatedAt = time.Now().UTC()

	if err := s.campaigns.Replace(id, &updated); err != nil {
		s.notifier.Error("Could not save campaign: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success(fmt.Sprintf("Campaign marked %s", target))
	s.feed.Record("campaigns", "status", fmt.Sprintf("Campaign %q is now %s", updated.Name, target))
	return &updated, nil
}

// DeleteCampaign removes a campaign. Active campaigns are protected and
// require the force flag, standing in for the second confirmation dialog.
func (s *CampaignService) DeleteCampaign(id int, force bool) error {
	err := s.campaigns.Delete(id, force)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Campaign not found!")
			return &NotFoundError{Resource: "campaign", ID: id}
		}
		if errors.Is(err, store.ErrProtected) {
			s.notifier.Warning("This campaign is active; confirm again to delete it")
			return &ProtectedError{Resource: "campaign", ID: id}
		}
		s.notifier.Error("Could not delete campaign: " + err.Error())
		return &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Campaign deleted")
	s.feed.Record("campaigns", "delete", fmt.Sprintf("Campaign %d deleted", id))
	return nil
}

// Request types

// CreateCampaignRequest represents a request to create a campaign
type CreateCampaignRequest struct {
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Type            string             `json:"type"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	Budget          float64            `json:"budget"`
	BudgetAllocated float64            `json:"budget_allocated"`
	BudgetUsed      float64            `json:"budget_used"`
	Personnel       int                `json:"personnel"`
	Equipment       int                `json:"equipment"`
	Milestones      []models.Milestone `json:"milestones,omitempty"`
}

// Validate checks the request and parses the calendar dates
func (r *CreateCampaignRequest) Validate() (start, end time.Time, err error) {
	if r.Name == "" {
		return start, end, fmt.Errorf("name is required")
	}
	if err := sanitize.CheckName("campaign name", r.Name); err != nil {
		return start, end, err
	}
	if err := sanitize.CheckDescription("campaign description", r.Description); err != nil {
		return start, end, err
	}

	start, err = time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid start date: use YYYY-MM-DD")
	}
	end, err = time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid end date: use YYYY-MM-DD")
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("end date must not be earlier than start date")
	}
	if r.Budget < 0 {
		return start, end, fmt.Errorf("budget must not be negative")
	}

	return start, end, nil
}

// UpdateCampaignRequest represents a partial campaign update; nil fields
// keep their previous values
type UpdateCampaignRequest struct {
	Name            *string             `json:"name,omitempty"`
	Description     *string             `json:"description,omitempty"`
	Type            *string             `json:"type,omitempty"`
	StartDate       *string             `json:"start_date,omitempty"`
	EndDate         *string             `json:"end_date,omitempty"`
	Budget          *float64            `json:"budget,omitempty"`
	BudgetAllocated *float64            `json:"budget_allocated,omitempty"`
	BudgetUsed      *float64            `json:"budget_used,omitempty"`
	Personnel       *int                `json:"personnel,omitempty"`
	Equipment       *int                `json:"equipment,omitempty"`
	Milestones      *[]models.Milestone `json:"milestones,omitempty"`
}
