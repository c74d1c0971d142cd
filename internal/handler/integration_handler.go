package handler

import (
	"net/http"
	"time"

	"civicboard/internal/export"
	"civicboard/internal/models"
	"civicboard/internal/service"

	"github.com/gorilla/mux"
)

// IntegrationHandler handles HTTP requests for cross-agency integrations
type IntegrationHandler struct {
	integrationService *service.IntegrationService
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(integrationService *service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{
		integrationService: integrationService,
	}
}

// RegisterRoutes attaches the integration endpoints to the router
func (h *IntegrationHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/integrations", h.List).Methods(http.MethodGet)
	r.HandleFunc("/integrations", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/integrations/logs/export", h.ExportLogs).Methods(http.MethodGet)
	r.HandleFunc("/integrations/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/integrations/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/integrations/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/integrations/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/integrations/{id}/status", h.ChangeStatus).Methods(http.MethodPost)
	r.HandleFunc("/integrations/{id}/sync", h.Sync).Methods(http.MethodPost)
}

// List handles GET /integrations
func (h *IntegrationHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, h.integrationService.ListIntegrations())
}

// Search handles GET /integrations/search?q=
func (h *IntegrationHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	WriteOK(w, h.integrationService.SearchIntegrations(query))
}

// Get handles GET /integrations/{id}
func (h *IntegrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	integration, err := h.integrationService.GetIntegration(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, integration)
}

// Create handles POST /integrations
func (h *IntegrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateIntegrationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	integration, err := h.integrationService.CreateIntegration(&req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, integration)
}

// Update handles PUT /integrations/{id}
func (h *IntegrationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.UpdateIntegrationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	integration, err := h.integrationService.UpdateIntegration(id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, integration)
}

// ChangeStatus handles POST /integrations/{id}/status
func (h *IntegrationHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status models.IntegrationStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	integration, err := h.integrationService.ChangeIntegrationStatus(id, req.Status)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, integration)
}

// Delete handles DELETE /integrations/{id}?force=true
func (h *IntegrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.integrationService.DeleteIntegration(id, forceFlag(r)); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

// Sync handles POST /integrations/{id}/sync
func (h *IntegrationHandler) Sync(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	integration, err := h.integrationService.Sync(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, integration)
}

// ExportLogs handles GET /integrations/logs/export - downloads the sync log
func (h *IntegrationHandler) ExportLogs(w http.ResponseWriter, r *http.Request) {
	body, filename := export.IntegrationLog(h.integrationService.ListIntegrations(), time.Now().UTC())
	writeDownload(w, filename, "text/plain", body)
}
