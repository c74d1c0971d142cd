package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ContentStatus represents valid content item statuses
type ContentStatus string

const (
	ContentStatusDraft    ContentStatus = "draft"
	ContentStatusPending  ContentStatus = "pending"
	ContentStatusApproved ContentStatus = "approved"
	ContentStatusRejected ContentStatus = "rejected"
)

// contentTransitions maps each status to the statuses it may move to.
// Rejected content must go back through pending before approval; approved
// content re-enters review as a new revision.
var contentTransitions = map[ContentStatus][]ContentStatus{
	ContentStatusDraft:    {ContentStatusPending},
	ContentStatusPending:  {ContentStatusApproved, ContentStatusRejected},
	ContentStatusApproved: {ContentStatusPending},
	ContentStatusRejected: {ContentStatusPending},
}

// ContentItem represents a document in the content repository
type ContentItem struct {
	ID          int           `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Category    string        `json:"category" db:"category"`
	SizeBytes   uint64        `json:"size_bytes" db:"size_bytes"`
	Status      ContentStatus `json:"status" db:"status"`
	Version     int           `json:"version" db:"version"`
	Tags        []string      `json:"tags,omitempty"`
	Description string        `json:"description" db:"description"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// RecordID returns the content item's unique ID
func (c *ContentItem) RecordID() int { return c.ID }

// SetRecordID assigns the content item's unique ID
func (c *ContentItem) SetRecordID(id int) { c.ID = id }

// DisplayFields returns the fields searched by the list view
func (c *ContentItem) DisplayFields() []string {
	fields := []string{c.Name, c.Category, c.Description, string(c.Status)}
	return append(fields, c.Tags...)
}

// Size returns the human-readable size string shown in the repository view
func (c *ContentItem) Size() string {
	return humanize.Bytes(c.SizeBytes)
}

// ValidStatus checks if the status is one of the allowed values
func (s ContentStatus) ValidStatus() bool {
	_, ok := contentTransitions[s]
	return ok
}

// CanTransitionTo checks whether the status may move to the target status
func (s ContentStatus) CanTransitionTo(target ContentStatus) bool {
	for _, allowed := range contentTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Validate checks if the content item fields are valid
func (c *ContentItem) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("content name is required")
	}
	if !strings.Contains(c.Name, ".") {
		return fmt.Errorf("content name must include a file extension")
	}
	if !c.Status.ValidStatus() {
		return fmt.Errorf("invalid status: %q", c.Status)
	}
	if c.Version < 1 {
		return fmt.Errorf("version must be at least 1")
	}
	for _, tag := range c.Tags {
		if !strings.HasPrefix(tag, "#") {
			return fmt.Errorf("tag %q must start with '#'", tag)
		}
	}
	return nil
}

// IsProtected reports whether deleting the item needs extra confirmation
func (c *ContentItem) IsProtected() bool {
	return c.Status == ContentStatusApproved
}
