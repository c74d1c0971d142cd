package models

import (
	"fmt"
	"time"
)

// SegmentType represents valid audience segment types
type SegmentType string

const (
	SegmentTypeDemographic   SegmentType = "demographic"
	SegmentTypeGeographic    SegmentType = "geographic"
	SegmentTypeBehavioral    SegmentType = "behavioral"
	SegmentTypePsychographic SegmentType = "psychographic"
)

// SegmentStatus represents valid segment statuses
type SegmentStatus string

const (
	SegmentStatusActive   SegmentStatus = "active"
	SegmentStatusDraft    SegmentStatus = "draft"
	SegmentStatusArchived SegmentStatus = "archived"
	SegmentStatusPaused   SegmentStatus = "paused"
)

var segmentTransitions = map[SegmentStatus][]SegmentStatus{
	SegmentStatusDraft:    {SegmentStatusActive, SegmentStatusArchived},
	SegmentStatusActive:   {SegmentStatusPaused, SegmentStatusArchived},
	SegmentStatusPaused:   {SegmentStatusActive, SegmentStatusArchived},
	SegmentStatusArchived: {},
}

// SegmentCriteria describes the targeting rules of a segment
type SegmentCriteria struct {
	AgeRange  string   `json:"age_range,omitempty"`
	Location  string   `json:"location,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Income    string   `json:"income,omitempty"`
}

// Segment represents an audience segment
type Segment struct {
	ID             int             `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Type           SegmentType     `json:"type" db:"type"`
	Size           int             `json:"size" db:"size"`
	EstimatedSize  int             `json:"estimated_size" db:"estimated_size"`
	Status         SegmentStatus   `json:"status" db:"status"`
	EngagementRate float64         `json:"engagement_rate" db:"engagement_rate"`
	Tags           []string        `json:"tags,omitempty"`
	Criteria       SegmentCriteria `json:"criteria"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// RecordID returns the segment's unique ID
func (s *Segment) RecordID() int { return s.ID }

// SetRecordID assigns the segment's unique ID
func (s *Segment) SetRecordID(id int) { s.ID = id }

// DisplayFields returns the fields searched by the list view
func (s *Segment) DisplayFields() []string {
	fields := []string{s.Name, string(s.Type), string(s.Status), s.Criteria.Location}
	return append(fields, s.Tags...)
}

// ValidType checks if the type is one of the allowed values
func (t SegmentType) ValidType() bool {
	switch t {
	case SegmentTypeDemographic, SegmentTypeGeographic, SegmentTypeBehavioral, SegmentTypePsychographic:
		return true
	}
	return false
}

// ValidStatus checks if the status is one of the allowed values
func (s SegmentStatus) ValidStatus() bool {
	_, ok := segmentTransitions[s]
	return ok
}

// CanTransitionTo checks whether the status may move to the target status
func (s SegmentStatus) CanTransitionTo(target SegmentStatus) bool {
	for _, allowed := range segmentTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Validate checks if the segment fields are valid
func (s *Segment) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("segment name is required")
	}
	if !s.Type.ValidType() {
		return fmt.Errorf("invalid type: must be 'demographic', 'geographic', 'behavioral' or 'psychographic'")
	}
	if !s.Status.ValidStatus() {
		return fmt.Errorf("invalid status: %q", s.Status)
	}
	if s.Size < 0 || s.EstimatedSize < 0 {
		return fmt.Errorf("segment size must not be negative")
	}
	if s.EngagementRate < 0 || s.EngagementRate > 100 {
		return fmt.Errorf("engagement rate must be between 0 and 100")
	}
	return nil
}

// IsProtected reports whether deleting the segment needs extra confirmation
func (s *Segment) IsProtected() bool {
	return s.Status == SegmentStatusActive
}
