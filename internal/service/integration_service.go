package service

import (
	"context"
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

// SyncPublisher enqueues a sync job for background processing
type SyncPublisher interface {
	PublishSync(integrationID int, system string) error
}

// IntegrationService handles cross-agency integration business logic.
// Sync requests go to the queue when a broker is configured and fall
// back to an inline simulated exchange when it is not.
type IntegrationService struct {
	integrations *store.Store[*models.Integration]
	publisher    SyncPublisher
	syncer       *SyncService
	notifier     *notify.Notifier
	feed         *activity.Feed
}

// NewIntegrationService creates a new integration service. publisher may
// be nil; syncs then run inline.
func NewIntegrationService(integrations *store.Store[*models.Integration], publisher SyncPublisher, syncer *SyncService, notifier *notify.Notifier, feed *activity.Feed) *IntegrationService {
	return &IntegrationService{
		integrations: integrations,
		publisher:    publisher,
		syncer:       syncer,
		notifier:     notifier,
		feed:         feed,
	}
}

// ListIntegrations returns all integrations
func (s *IntegrationService) ListIntegrations() []*models.Integration {
	return s.integrations.All()
}

// GetIntegration retrieves an integration by ID
func (s *IntegrationService) GetIntegration(id int) (*models.Integration, error) {
	integration, ok := s.integrations.Get(id)
	if !ok {
		return nil, &NotFoundError{Resource: "integration", ID: id}
	}
	return integration, nil
}

// SearchIntegrations returns integrations matching the query
func (s *IntegrationService) SearchIntegrations(query string) []*models.Integration {
	return s.integrations.Search(query)
}

// CreateIntegration validates the request and appends a new connection
func (s *IntegrationService) CreateIntegration(req *CreateIntegrationRequest) (*models.Integration, error) {
	if err := req.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	now := time.Now().UTC()
	integration := &models.Integration{
		Name:       req.Name,
		Type:       req.Type,
		System:     req.System,
		DataPoints: req.DataPoints,
		Status:     models.IntegrationStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.integrations.Create(integration)
	if err != nil {
		s.notifier.Error("Could not save integration: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Integration created successfully!")
	s.feed.Record("integrations", "create", fmt.Sprintf("Connected to %s", created.System))
	return created, nil
}

// UpdateIntegration merges the provided fields over the existing integration
func (s *IntegrationService) UpdateIntegration(id int, req *UpdateIntegrationRequest) (*models.Integration, error) {
	existing, ok := s.integrations.Get(id)
	if !ok {
		s.notifier.Error("Integration not found!")
		return nil, &NotFoundError{Resource: "integration", ID: id}
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.System != nil {
		updated.System = *req.System
	}
	if req.DataPoints != nil {
		updated.DataPoints = *req.DataPoints
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := sanitize.CheckName("integration name", updated.Name); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := updated.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.integrations.Replace(id, &updated); err != nil {
		s.notifier.Error("Could not save integration: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Integration updated successfully!")
	return &updated, nil
}

// ChangeIntegrationStatus moves an integration between live states
func (s *IntegrationService) ChangeIntegrationStatus(id int, target models.IntegrationStatus) (*models.Integration, error) {
	existing, ok := s.integrations.Get(id)
	if !ok {
		s.notifier.Error("Integration not found!")
		return nil, &NotFoundError{Resource: "integration", ID: id}
	}

	if !target.ValidStatus() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status: %q", target)}
	}
	if !existing.Status.CanTransitionTo(target) {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("integration cannot move from %s to %s", existing.Status, target),
		}
	}

	updated := *existing
	updated.Status = target
	if target != models.IntegrationStatusError {
		updated.LastError = ""
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.integrations.Replace(id, &updated); err != nil {
		s.notifier.Error("Could not save integration: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success(fmt.Sprintf("Integration is now %s", target))
	s.feed.Record("integrations", "status", fmt.Sprintf("%s is now %s", updated.Name, target))
	return &updated, nil
}

// DeleteIntegration removes an integration; active ones are protected
// and require the force flag
func (s *IntegrationService) DeleteIntegration(id int, force bool) error {
	err := s.integrations.Delete(id, force)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Integration not found!")
			return &NotFoundError{Resource: "integration", ID: id}
		}
		if errors.Is(err, store.ErrProtected) {
			s.notifier.Warning("This integration is active; confirm again to delete it")
			return &ProtectedError{Resource: "integration", ID: id}
		}
		s.notifier.Error("Could not delete integration: " + err.Error())
		return &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Integration deleted")
	s.feed.Record("integrations", "delete", fmt.Sprintf("Integration %d deleted", id))
	return nil
}

// Sync requests a data exchange for one integration. With a broker the
// job is queued for the worker; without one the exchange runs inline so
// demo installs still see results.
func (s *IntegrationService) Sync(ctx context.Context, id int) (*models.Integration, error) {
	existing, ok := s.integrations.Get(id)
	if !ok {
		s.notifier.Error("Integration not found!")
		return nil, &NotFoundError{Resource: "integration", ID: id}
	}
	if !existing.CanSync() {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("integration is %s and cannot sync", existing.Status),
		}
	}

	if s.publisher != nil {
		err := s.publisher.PublishSync(existing.ID, existing.System)
		if err == nil {
			s.notifier.Info(fmt.Sprintf("Sync with %s queued", existing.System))
			s.feed.Record("integrations", "sync", fmt.Sprintf("Sync with %s queued", existing.System))
			return existing, nil
		}
		log.Printf("ERROR: failed to queue sync for %s, running inline: %v", existing.System, err)
	}

	result, syncErr := s.syncer.Run(ctx, existing.ID, existing.System)
	return s.RecordSyncOutcome(existing.ID, result, syncErr)
}

// RecordSyncOutcome applies a finished sync attempt to the integration.
// The worker calls this after consuming a queued job; inline syncs call
// it directly.
func (s *IntegrationService) RecordSyncOutcome(id int, result *SyncResult, syncErr error) (*models.Integration, error) {
	existing, ok := s.integrations.Get(id)
	if !ok {
		return nil, &NotFoundError{Resource: "integration", ID: id}
	}

	updated := *existing
	updated.UpdatedAt = time.Now().UTC()

	if syncErr != nil {
		updated.Status = models.IntegrationStatusError
		updated.LastError = syncErr.Error()
		if err := s.integrations.Replace(id, &updated); err != nil {
			s.notifier.Error("Could not save integration: " + err.Error())
			return nil, &StorageError{Message: err.Error()}
		}
		s.notifier.Error(fmt.Sprintf("Sync with %s failed: %v", updated.System, syncErr))
		s.feed.Record("integrations", "sync", fmt.Sprintf("Sync with %s failed", updated.System))
		return &updated, nil
	}

	syncedAt := result.SyncedAt
	updated.Status = models.IntegrationStatusActive
	updated.LastSync = &syncedAt
	updated.LastError = ""
	if err := s.integrations.Replace(id, &updated); err != nil {
		s.notifier.Error("Could not save integration: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success(fmt.Sprintf("Synced %d records with %s", result.Records, updated.System))
	s.feed.Record("integrations", "sync", fmt.Sprintf("Synced %d records with %s", result.Records, updated.System))
	return &updated, nil
}

// Request types

// CreateIntegrationRequest represents a request to connect a system
type CreateIntegrationRequest struct {
	Name       string                 `json:"name"`
	Type       models.IntegrationType `json:"type"`
	System     string                 `json:"system"`
	DataPoints []string               `json:"data_points,omitempty"`
}

// Validate checks the request fields
func (r *CreateIntegrationRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if err := sanitize.CheckName("integration name", r.Name); err != nil {
		return err
	}
	if err := sanitize.CheckName("system name", r.System); err != nil {
		return err
	}
	if !r.Type.ValidType() {
		return fmt.Errorf("invalid type: must be 'Health', 'Police', 'Emergency' or 'Data'")
	}
	return nil
}

// UpdateIntegrationRequest represents a partial integration update
type UpdateIntegrationRequest struct {
	Name       *string                 `json:"name,omitempty"`
	Type       *models.IntegrationType `json:"type,omitempty"`
	System     *string                 `json:"system,omitempty"`
	DataPoints *[]string               `json:"data_points,omitempty"`
}
