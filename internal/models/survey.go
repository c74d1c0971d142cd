package models

import (
	"fmt"
	"time"
)

// SurveyStatus represents valid survey statuses
type SurveyStatus string

const (
	SurveyStatusDraft  SurveyStatus = "draft"
	SurveyStatusActive SurveyStatus = "active"
	SurveyStatusClosed SurveyStatus = "closed"
)

var surveyTransitions = map[SurveyStatus][]SurveyStatus{
	SurveyStatusDraft:  {SurveyStatusActive},
	SurveyStatusActive: {SurveyStatusClosed},
	SurveyStatusClosed: {},
}

// Survey represents a resident feedback survey
type Survey struct {
	ID             int          `json:"id" db:"id"`
	Name           string       `json:"name" db:"name"`
	Type           string       `json:"type" db:"type"`
	Description    string       `json:"description" db:"description"`
	Status         SurveyStatus `json:"status" db:"status"`
	Responses      int          `json:"responses" db:"responses"`
	CompletionRate float64      `json:"completion_rate" db:"completion_rate"`
	AvgRating      float64      `json:"avg_rating" db:"avg_rating"`
	LaunchedAt     *time.Time   `json:"launched_at,omitempty" db:"launched_at"`
	ClosedAt       *time.Time   `json:"closed_at,omitempty" db:"closed_at"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// RecordID returns the survey's unique ID
func (s *Survey) RecordID() int { return s.ID }

// SetRecordID assigns the survey's unique ID
func (s *Survey) SetRecordID(id int) { s.ID = id }

// DisplayFields returns the fields searched by the list view
func (s *Survey) DisplayFields() []string {
	return []string{s.Name, s.Type, s.Description, string(s.Status)}
}

// ValidStatus checks if the status is one of the allowed values
func (s SurveyStatus) ValidStatus() bool {
	_, ok := surveyTransitions[s]
	return ok
}

// CanTransitionTo checks whether the status may move to the target status
func (s SurveyStatus) CanTransitionTo(target SurveyStatus) bool {
	for _, allowed := range surveyTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Validate checks if the survey fields are valid
func (s *Survey) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("survey name is required")
	}
	if !s.Status.ValidStatus() {
		return fmt.Errorf("invalid status: %q", s.Status)
	}
	if s.Responses < 0 {
		return fmt.Errorf("responses must not be negative")
	}
	if s.CompletionRate < 0 || s.CompletionRate > 100 {
		return fmt.Errorf("completion rate must be between 0 and 100")
	}
	if s.AvgRating < 0 || s.AvgRating > 5 {
		return fmt.Errorf("average rating must be between 0 and 5")
	}
	return nil
}

// CanLaunch checks if the survey can be launched
func (s *Survey) CanLaunch() bool {
	return s.Status == SurveyStatusDraft
}

// IsOpen checks if the survey is accepting responses
func (s *Survey) IsOpen() bool {
	return s.Status == SurveyStatusActive
}

// IsProtected reports whether deleting the survey needs extra confirmation
func (s *Survey) IsProtected() bool {
	return s.Status == SurveyStatusActive
}

// SurveyResponse represents a single submitted response
type SurveyResponse struct {
	ID          int       `json:"id" db:"id"`
	SurveyID    int       `json:"survey_id" db:"survey_id"`
	Rating      int       `json:"rating" db:"rating"`
	Comment     string    `json:"comment,omitempty" db:"comment"`
	Completed   bool      `json:"completed" db:"completed"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}

// RecordID returns the response's unique ID
func (r *SurveyResponse) RecordID() int { return r.ID }

// SetRecordID assigns the response's unique ID
func (r *SurveyResponse) SetRecordID(id int) { r.ID = id }

// DisplayFields returns the fields searched by the list view
func (r *SurveyResponse) DisplayFields() []string {
	return []string{r.Comment}
}

// IsProtected reports whether deleting the response needs extra confirmation
func (r *SurveyResponse) IsProtected() bool { return false }

// Validate checks if the response fields are valid
func (r *SurveyResponse) Validate() error {
	if r.SurveyID <= 0 {
		return fmt.Errorf("survey ID is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}
