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

// ContentService handles content repository business logic
type ContentService struct {
	contents *store.Store[*models.ContentItem]
	notifier *notify.Notifier
	feed     *activity.Feed
}

// NewContentService creates a new content service
func NewContentService(contents *store.Store[*models.ContentItem], notifier *notify.Notifier, feed *activity.Feed) *ContentService {
	return &ContentService{
		contents: contents,
		notifier: notifier,
		feed:     feed,
	}
}

// ListContent returns all content items
func (s *ContentService) ListContent() []*models.ContentItem {
	return s.contents.All()
}

// GetContent retrieves a content item by ID
func (s *ContentService) GetContent(id int) (*models.ContentItem, error) {
	item, ok := s.contents.Get(id)
	if !ok {
		return nil, &NotFoundError{Resource: "content item", ID: id}
	}
	return item, nil
}

// SearchContent returns content items matching the query
func (s *ContentService) SearchContent(query string) []*models.ContentItem {
	return s.contents.Search(query)
}

// CreateContent validates the request and appends a new draft item
func (s *ContentService) CreateContent(req *CreateContentRequest) (*models.ContentItem, error) {
	if err := req.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	now := time.Now().UTC()
	item := &models.ContentItem{
		Name:        req.Name,
		Category:    req.Category,
		SizeBytes:   req.SizeBytes,
		Status:      models.ContentStatusDraft,
		Version:     1,
		Tags:        req.Tags,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := item.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	created, err := s.contents.Create(item)
	if err != nil {
		s.notifier.Error("Could not save content item: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Content uploaded successfully!")
	s.feed.Record("content", "create", fmt.Sprintf("Content %q added", created.Name))
	return created, nil
}

// UpdateContent merges the provided fields over the existing item
func (s *ContentService) UpdateContent(id int, req *UpdateContentRequest) (*models.ContentItem, error) {
	existing, ok := s.contents.Get(id)
	if !ok {
		s.notifier.Error("Content item not found!")
		return nil, &NotFoundError{Resource: "content item", ID: id}
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.SizeBytes != nil {
		updated.SizeBytes = *req.SizeBytes
	}
	if req.Tags != nil {
		updated.Tags = *req.Tags
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := sanitize.CheckName("content name", updated.Name); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := sanitize.CheckDescription("content description", updated.Description); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := updated.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.contents.Replace(id, &updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Content item not found!")
			return nil, &NotFoundError{Resource: "content item", ID: id}
		}
		s.notifier.Error("Could not save content item: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Content updated successfully!")
	s.feed.Record("content", "update", fmt.Sprintf("Content %q updated", updated.Name))
	return &updated, nil
}

// ChangeContentStatus drives the review workflow. Rejected items must go
// back through pending; re-submitting approved content starts a new
// revision and bumps the version.
func (s *ContentService) ChangeContentStatus(id int, target models.ContentStatus) (*models.ContentItem, error) {
	existing, ok := s.contents.Get(id)
	if !ok {
		s.notifier.Error("Content item not found!")
		return nil, &NotFoundError{Resource: "content item", ID: id}
	}

	if !target.ValidStatus() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status: %q", target)}
	}
	if !existing.Status.CanTransitionTo(target) {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("content cannot move from %s to %s", existing.Status, target),
		}
	}

	updated := *existing
	if existing.Status == models.ContentStatusApproved && target == models.ContentStatusPending {
		updated.Version++
	}
	updated.Status = target
	updated.UpdatedAt = time.Now().UTC()

	if err := s.contents.Replace(id, &updated); err != nil {
		s.notifier.Error("Could not save content item: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success(fmt.Sprintf("Content marked %s", target))
	s.feed.Record("content", "status", fmt.Sprintf("Content %q is now %s", updated.Name, target))
	return &updated, nil
}

// DeleteContent removes a content item. Approved content is protected and
// requires the force flag.
func (s *ContentService) DeleteContent(id int, force bool) error {
	err := s.contents.Delete(id, force)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Content item not found!")
			return &NotFoundError{Resource: "content item", ID: id}
		}
		if errors.Is(err, store.ErrProtected) {
			s.notifier.Warning("This content is approved; confirm again to delete it")
			return &ProtectedError{Resource: "content item", ID: id}
		}
		s.notifier.Error("Could not delete content item: " + err.Error())
		return &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Content deleted")
	s.feed.Record("content", "delete", fmt.Sprintf("Content %d deleted", id))
	return nil
}

// Request types

// CreateContentRequest represents a request to add a content item
type CreateContentRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	SizeBytes   uint64   `json:"size_bytes"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description"`
}

// Validate checks the request fields
func (r *CreateContentRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if err := sanitize.CheckName("content name", r.Name); err != nil {
		return err
	}
	if err := sanitize.CheckDescription("content description", r.Description); err != nil {
		return err
	}
	for _, tag := range r.Tags {
		if err := sanitize.CheckFreeText("tag", tag, sanitize.MaxNameLength); err != nil {
			return err
		}
	}
	return nil
}

// UpdateContentRequest represents a partial content update
type UpdateContentRequest struct {
	Name        *string   `json:"name,omitempty"`
	Category    *string   `json:"category,omitempty"`
	SizeBytes   *uint64   `json:"size_bytes,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Description *string   `json:"description,omitempty"`
}
