package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"civicboard/internal/activity"
	"civicboard/internal/models"
	"civicboard/internal/notify"
	"civicboard/internal/sanitize"
	"civicboard/internal/store"
)

// SurveyService handles survey business logic: the draft/active/closed
// lifecycle and response aggregation.
type SurveyService struct {
	surveys   *store.Store[*models.Survey]
	responses *store.Store[*models.SurveyResponse]
	notifier  *notify.Notifier
	feed      *activity.Feed
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveys *store.Store[*models.Survey], responses *store.Store[*models.SurveyResponse], notifier *notify.Notifier, feed *activity.Feed) *SurveyService {
	return &SurveyService{
		surveys:   surveys,
		responses: responses,
		notifier:  notifier,
		feed:      feed,
	}
}

// ListSurveys returns all surveys
func (s *SurveyService) ListSurveys() []*models.Survey {
	return s.surveys.All()
}

// GetSurvey retrieves a survey by ID
func (s *SurveyService) GetSurvey(id int) (*models.Survey, error) {
	survey, ok := s.surveys.Get(id)
	if !ok {
		return nil, &NotFoundError{Resource: "survey", ID: id}
	}
	return survey, nil
}

// SearchSurveys returns surveys matching the query
func (s *SurveyService) SearchSurveys(query string) []*models.Survey {
	return s.surveys.Search(query)
}

// CreateSurvey validates the request and appends a new draft survey
func (s *SurveyService) CreateSurvey(req *CreateSurveyRequest) (*models.Survey, error) {
	if err := req.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	now := time.Now().UTC()
	survey := &models.Survey{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Status:      models.SurveyStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.surveys.Create(survey)
	if err != nil {
		s.notifier.Error("Could not save survey: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Survey created successfully!")
	s.feed.Record("surveys", "create", fmt.Sprintf("Survey %q drafted", created.Name))
	return created, nil
}

// UpdateSurvey merges the provided fields over the existing survey.
// Only draft surveys are editable.
func (s *SurveyService) UpdateSurvey(id int, req *UpdateSurveyRequest) (*models.Survey, error) {
	existing, ok := s.surveys.Get(id)
	if !ok {
		s.notifier.Error("Survey not found!")
		return nil, &NotFoundError{Resource: "survey", ID: id}
	}
	if existing.Status != models.SurveyStatusDraft {
		return nil, &BusinessLogicError{Message: "only draft surveys can be edited"}
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := sanitize.CheckName("survey name", updated.Name); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := sanitize.CheckDescription("survey description", updated.Description); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := updated.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.surveys.Replace(id, &updated); err != nil {
		s.notifier.Error("Could not save survey: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success("Survey updated successfully!")
	return &updated, nil
}

// LaunchSurvey moves a draft survey to active and stamps the launch time
func (s *SurveyService) LaunchSurvey(id int) (*models.Survey, error) {
	existing, ok := s.surveys.Get(id)
	if !ok {
		s.notifier.Error("Survey not found!")
		return nil, &NotFoundError{Resource: "survey", ID: id}
	}
	if !existing.CanLaunch() {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("survey is %s and cannot be launched", existing.Status),
		}
	}

	now := time.Now().UTC()
	updated := *existing
	updated.Status = models.SurveyStatusActive
	updated.LaunchedAt = &now
	updated.UpdatedAt = now

	if err := s.surveys.Replace(id, &updated); err != nil {
		s.notifier.Error("Could not save survey: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success(fmt.Sprintf("Survey %q is now live!", updated.Name))
	s.feed.Record("surveys", "launch", fmt.Sprintf("Survey %q launched", updated.Name))
	return &updated, nil
}

// CloseSurvey moves an active survey to closed and stamps the close time
func (s *SurveyService) CloseSurvey(id int) (*models.Survey, error) {
	existing, ok := s.surveys.Get(id)
	if !ok {
		s.notifier.Error("Survey not found!")
		return nil, &NotFoundError{Resource: "survey", ID: id}
	}
	if !existing.Status.CanTransitionTo(models.SurveyStatusClosed) {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("survey is %s and cannot be closed", existing.Status),
		}
	}

	now := time.Now().UTC()
	updated := *existing
	updated.Status = models.SurveyStatusClosed
	updated.ClosedAt = &now
	updated.UpdatedAt = now

	if err := s.surveys.Replace(id, &updated); err != nil {
		s.notifier.Error("Could not save survey: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	s.notifier.Success(fmt.Sprintf("Survey %q closed", updated.Name))
	s.feed.Record("surveys", "close", fmt.Sprintf("Survey %q closed", updated.Name))
	return &updated, nil
}

// DeleteSurvey removes a survey; active surveys are protected and
// require the force flag. Responses for the survey are removed with it.
func (s *SurveyService) DeleteSurvey(id int, force bool) error {
	err := s.surveys.Delete(id, force)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.notifier.Error("Survey not found!")
			return &NotFoundError{Resource: "survey", ID: id}
		}
		if errors.Is(err, store.ErrProtected) {
			s.notifier.Warning("This survey is live; confirm again to delete it")
			return &ProtectedError{Resource: "survey", ID: id}
		}
		s.notifier.Error("Could not delete survey: " + err.Error())
		return &StorageError{Message: err.Error()}
	}

	for _, resp := range s.responses.All() {
		if resp.SurveyID == id {
			// Best effort; the survey itself is already gone
			_ = s.responses.Delete(resp.ID, true)
		}
	}

	s.notifier.Success("Survey deleted")
	s.feed.Record("surveys", "delete", fmt.Sprintf("Survey %d deleted", id))
	return nil
}

// ListResponses returns the responses submitted for one survey
func (s *SurveyService) ListResponses(surveyID int) ([]*models.SurveyResponse, error) {
	if _, ok := s.surveys.Get(surveyID); !ok {
		return nil, &NotFoundError{Resource: "survey", ID: surveyID}
	}

	var result []*models.SurveyResponse
	for _, resp := range s.responses.All() {
		if resp.SurveyID == surveyID {
			result = append(result, resp)
		}
	}
	return result, nil
}

// SubmitResponse records a response against an open survey and refreshes
// the survey's aggregate figures
func (s *SurveyService) SubmitResponse(surveyID int, req *SubmitResponseRequest) (*models.SurveyResponse, error) {
	survey, ok := s.surveys.Get(surveyID)
	if !ok {
		s.notifier.Error("Survey not found!")
		return nil, &NotFoundError{Resource: "survey", ID: surveyID}
	}
	if !survey.IsOpen() {
		return nil, &BusinessLogicError{
			Message: fmt.Sprintf("survey is %s and not accepting responses", survey.Status),
		}
	}

	if err := sanitize.CheckDescription("comment", req.Comment); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	response := &models.SurveyResponse{
		SurveyID:    surveyID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Completed:   req.Completed,
		SubmittedAt: time.Now().UTC(),
	}
	if err := response.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	created, err := s.responses.Create(response)
	if err != nil {
		s.notifier.Error("Could not save response: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	if err := s.refreshAggregates(surveyID); err != nil {
		return nil, err
	}

	s.notifier.Success("Response recorded")
	return created, nil
}

// SurveyStats summarizes the submitted responses for one survey
type SurveyStats struct {
	SurveyID       int     `json:"survey_id"`
	Responses      int     `json:"responses"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
	AvgRating      float64 `json:"avg_rating"`
}

// Stats computes the response summary for one survey
func (s *SurveyService) Stats(surveyID int) (*SurveyStats, error) {
	if _, ok := s.surveys.Get(surveyID); !ok {
		return nil, &NotFoundError{Resource: "survey", ID: surveyID}
	}

	stats := &SurveyStats{SurveyID: surveyID}
	var ratingSum int
	for _, resp := range s.responses.All() {
		if resp.SurveyID != surveyID {
			continue
		}
		stats.Responses++
		ratingSum += resp.Rating
		if resp.Completed {
			stats.Completed++
		}
	}
	if stats.Responses > 0 {
		stats.CompletionRate = round1(float64(stats.Completed) / float64(stats.Responses) * 100)
		stats.AvgRating = round1(float64(ratingSum) / float64(stats.Responses))
	}
	return stats, nil
}

// refreshAggregates recomputes the survey's stored summary from its responses
func (s *SurveyService) refreshAggregates(surveyID int) error {
	stats, err := s.Stats(surveyID)
	if err != nil {
		return err
	}

	survey, ok := s.surveys.Get(surveyID)
	if !ok {
		return &NotFoundError{Resource: "survey", ID: surveyID}
	}

	updated := *survey
	updated.Responses = stats.Responses
	updated.CompletionRate = stats.CompletionRate
	updated.AvgRating = stats.AvgRating
	updated.UpdatedAt = time.Now().UTC()

	if err := s.surveys.Replace(surveyID, &updated); err != nil {
		s.notifier.Error("Could not update survey totals: " + err.Error())
		return &StorageError{Message: err.Error()}
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Request types

// CreateSurveyRequest represents a request to draft a survey
type CreateSurveyRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Validate checks the request fields
func (r *CreateSurveyRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if err := sanitize.CheckName("survey name", r.Name); err != nil {
		return err
	}
	if err := sanitize.CheckDescription("survey description", r.Description); err != nil {
		return err
	}
	return nil
}

// UpdateSurveyRequest represents a partial survey update
type UpdateSurveyRequest struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SubmitResponseRequest represents a submitted survey response
type SubmitResponseRequest struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	Completed bool   `json:"completed"`
}
