package handler

import (
	"net/http"
	"time"

	"civicboard/internal/export"
	"civicboard/internal/service"

	"github.com/gorilla/mux"
)

// SurveyHandler handles HTTP requests for surveys and their responses
type SurveyHandler struct {
	surveyService *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveyService *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{
		surveyService: surveyService,
	}
}

// RegisterRoutes attaches the survey endpoints to the router
func (h *SurveyHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/surveys", h.List).Methods(http.MethodGet)
	r.HandleFunc("/surveys", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/surveys/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/surveys/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/surveys/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/surveys/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/surveys/{id}/launch", h.Launch).Methods(http.MethodPost)
	r.HandleFunc("/surveys/{id}/close", h.Close).Methods(http.MethodPost)
	r.HandleFunc("/surveys/{id}/stats", h.Stats).Methods(http.MethodGet)
	r.HandleFunc("/surveys/{id}/export", h.Export).Methods(http.MethodGet)
	r.HandleFunc("/surveys/{id}/responses", h.ListResponses).Methods(http.MethodGet)
	r.HandleFunc("/surveys/{id}/responses", h.SubmitResponse).Methods(http.MethodPost)
}

// List handles GET /surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, h.surveyService.ListSurveys())
}

// Search handles GET /surveys/search?q=
func (h *SurveyHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	WriteOK(w, h.surveyService.SearchSurveys(query))
}

// Get handles GET /surveys/{id}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	survey, err := h.surveyService.GetSurvey(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, survey)
}

// Create handles POST /surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSurveyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	survey, err := h.surveyService.CreateSurvey(&req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, survey)
}

// Update handles PUT /surveys/{id}
func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.UpdateSurveyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	survey, err := h.surveyService.UpdateSurvey(id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, survey)
}

// Launch handles POST /surveys/{id}/launch
func (h *SurveyHandler) Launch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	survey, err := h.surveyService.LaunchSurvey(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, survey)
}

// Close handles POST /surveys/{id}/close
func (h *SurveyHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	survey, err := h.surveyService.CloseSurvey(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, survey)
}

// Delete handles DELETE /surveys/{id}?force=true
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.surveyService.DeleteSurvey(id, forceFlag(r)); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

// Stats handles GET /surveys/{id}/stats
func (h *SurveyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	stats, err := h.surveyService.Stats(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, stats)
}

// ListResponses handles GET /surveys/{id}/responses
func (h *SurveyHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	responses, err := h.surveyService.ListResponses(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, responses)
}

// SubmitResponse handles POST /surveys/{id}/responses
func (h *SurveyHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.SubmitResponseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	response, err := h.surveyService.SubmitResponse(id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, response)
}

// Export handles GET /surveys/{id}/export - downloads responses as CSV
func (h *SurveyHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	survey, err := h.surveyService.GetSurvey(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	responses, err := h.surveyService.ListResponses(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	body, filename, err := export.SurveyCSV(survey, responses, time.Now().UTC())
	if err != nil {
		HandleServiceError(w, &service.StorageError{Message: err.Error()})
		return
	}

	writeDownload(w, filename, "text/csv", body)
}
