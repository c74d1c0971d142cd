package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"civicboard/internal/activity"
	"civicboard/internal/models"
	"civicboard/internal/notify"
	"civicboard/internal/sanitize"
	"civicboard/internal/store"
)

// SegmentService handles audience segmentation business logic
type SegmentService struct {
	segments *store.Store[*models.Segment]
	notifier *notify.Notifier
	feed     *activity.Feed
}

// NewSegmentService creates a new segment service
func NewSegmentService(segments *store.Store[*models.Segment], notifier *notify.Notifier, feed *activity.Feed) *SegmentService {
	return &SegmentService{
		segments: segments,
		notifier: notifier,
		feed:     feed,
	}
}

// ListSegments returns all segments
func (s *SegmentService) ListSegments() []*models.Segment {
	return s.segments.All()
}

// GetSegment retrieves a segment by ID
func (s *SegmentService) GetSegment(id int) (*models.Segment, error) {
	segment, ok := s.segments.Get(id)
	if !ok {
		return nil, &NotFoundError{Resource: "segment", ID: id}
	}
	return segment, nil
}

// SearchSegments returns segments matching the query
func (s *SegmentService) SearchSegments(query string) []*models.Segment {
	return s.segments.Search(query)
}

// CreateSegment validates the request and appends a new segment
func (s *SegmentService) CreateSegment(req *CreateSegmentRequest) (*models.Segment, error) {
	if err := req.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	now := time.Now().UTC()
	segment := &models.Segment{
		Name:           req.Name,
		Type:           req.Type,
		Size:           req.Size,
		EstimatedSize:  req.EstimatedSize,
		Status:         models.SegmentStatusDraft,
		EngagementRate: req.EngagementRate,
		Tags:           req.Tags,
		Criteria:       req.Criteria,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := segment.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	created, err := s.segments.Create(segment)
	if err != nil {
		s.notifier.Error("Could not save segment: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Segment created successfully!")
	s.feed.Record("segments", "create", fmt.Sprintf("Segment %q created", created.Name))
	return created, nil
}

// UpdateSegment merges the provided fields over the existing segment
func (s *SegmentService) UpdateSegment(id int, req *UpdateSegmentRequest) (*models.Segment, error) {
	existing, ok := s.segments.Get(id)
	if !ok {
		s.notifier.Error("Segment not found!")
		return nil, &NotFoundError{Resource: "segment", ID: id}
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Size != nil {
		updated.Size = *req.Size
	}
	if req.EstimatedSize != nil {
		updated.EstimatedSize = *req.EstimatedSize
	}
	if req.EngagementRate != nil {
		updated.EngagementRate = *req.EngagementRate
	}
	if req.Tags != nil {
		updated.Tags = *req.Tags
	}
	if req.Criteria != nil {
		updated.Criteria = *req.Criteria
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := sanitize.CheckName("segment name", updated.Name); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := updated.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.segments.Replace(id, &updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Segment not found!")
			return nil, &NotFoundError{Resource: "segment", ID: id}
		}
		s.notifier.Error("Could not save segment: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Segment updated successfully!")
	s.feed.Record("segments", "update", fmt.Sprintf("Segment %q updated", updated.Name))
	return &updated, nil
}

// ChangeSegmentStatus moves the segment through its lifecycle
func (s *SegmentService) ChangeSegmentStatus(id int, target models.SegmentStatus) (*models.Segment, error) {
	existing, ok := s.segments.Get(id)
	if !ok {
		s.notifier.Error("Segment not found!")
		return nil, &NotFoundError{Resource: "segment", ID: id}
	}

	if !target.ValidStatus() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status: %q", target)}
	}
	if !existing.Status.CanTransitionTo(target) {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("segment cannot move from %s to %s", existing.Status, target),
		}
	}

	updated := *existing
	updated.Status = target
	updated.UpdatedAt = time.Now().UTC()

	if err := s.segments.Replace(id, &updated); err != nil {
		s.notifier.Error("Could not save segment: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success(fmt.Sprintf("Segment marked %s", target))
	return &updated, nil
}

// DeleteSegment removes a segment; active segments require the force flag
func (s *SegmentService) DeleteSegment(id int, force bool) error {
	err := s.segments.Delete(id, force)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Segment not found!")
			return &NotFoundError{Resource: "segment", ID: id}
		}
		if errors.Is(err, store.ErrProtected) {
			s.notifier.Warning("This segment is active; confirm again to delete it")
			return &ProtectedError{Resource: "segment", ID: id}
		}
		s.notifier.Error("Could not delete segment: " + err.Error())
		return &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Segment deleted")
	s.feed.Record("segments", "delete", fmt.Sprintf("Segment %d deleted", id))
	return nil
}

// ImportSegments replays an exported JSON payload, creating each segment
// afresh with a new ID. Invalid entries are skipped and counted.
func (s *SegmentService) ImportSegments(payload []byte) (*ImportSegmentsResult, error) {
	var incoming []*models.Segment
	if err := json.Unmarshal(payload, &incoming); err != nil {
		s.notifier.Error("Import failed: the file is not valid segment JSON")
		return nil, &ValidationError{Message: "payload is not valid segment JSON"}
	}

	result := &ImportSegmentsResult{}
	for _, segment := range incoming {
		copy := *segment
		copy.ID = 0
		if copy.Status == "" {
			copy.Status = models.SegmentStatusDraft
		}
		now := time.Now().UTC()
		copy.CreatedAt = now
		copy.UpdatedAt = now

		if err := copy.Validate(); err != nil {
			result.Skipped++
			continue
		}
		if err := sanitize.CheckName("segment name", copy.Name); err != nil {
			result.Skipped++
			continue
		}
		if _, err := s.segments.Create(&copy); err != nil {
			s.notifier.Error("Could not save imported segments: " + err.Error())
			return nil, &StorageError{Message: err.Error()}
		}
		result.Imported++
	}

	s.notifier.Success(fmt.Sprintf("Imported %d segments (%d skipped)", result.Imported, result.Skipped))
	s.feed.Record("segments", "import", fmt.Sprintf("%d segments imported", result.Imported))
	return result, nil
}

// Request/Response types

// CreateSegmentRequest represents a request to create a segment
type CreateSegmentRequest struct {
	Name           string                 `json:"name"`
	Type           models.SegmentType     `json:"type"`
	Size           int                    `json:"size"`
	EstimatedSize  int                    `json:"estimated_size"`
	EngagementRate float64                `json:"engagement_rate"`
	Tags           []string               `json:"tags,omitempty"`
	Criteria       models.SegmentCriteria `json:"criteria"`
}

// Validate checks the request fields
func (r *CreateSegmentRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !r.Type.ValidType() {
		return fmt.Errorf("invalid type: must be 'demographic', 'geographic', 'behavioral' or 'psychographic'")
	}
	if err := sanitize.CheckName("segment name", r.Name); err != nil {
		return err
	}
	for _, tag := range r.Tags {
		if err := sanitize.CheckFreeText("tag", tag, sanitize.MaxNameLength); err != nil {
			return err
		}
	}
	return nil
}

// UpdateSegmentRequest represents a partial segment update
type UpdateSegmentRequest struct {
	Name           *string                 `json:"name,omitempty"`
	Type           *models.SegmentType     `json:"type,omitempty"`
	Size           *int                    `json:"size,omitempty"`
	EstimatedSize  *int                    `json:"estimated_size,omitempty"`
	EngagementRate *float64                `json:"engagement_rate,omitempty"`
	Tags           *[]string               `json:"tags,omitempty"`
	Criteria       *models.SegmentCriteria `json:"criteria,omitempty"`
}

// ImportSegmentsResult reports the outcome of an import
type ImportSegmentsResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
