package handler

import (
	"net/http"

	"civicboard/internal/models"
	"civicboard/internal/service"

	"github.com/gorilla/mux"
)

// CampaignHandler handles HTTP requests for campaign operations
type CampaignHandler struct {
	campaignService *service.CampaignService
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignService *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

// RegisterRoutes attaches the campaign endpoints to the router
func (h *CampaignHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/campaigns", h.List).Methods(http.MethodGet)
	r.HandleFunc("/campaigns", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/campaigns/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/campaigns/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/campaigns/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/campaigns/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/campaigns/{id}/status", h.ChangeStatus).Methods(http.MethodPost)
}

// List handles GET /campaigns
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, h.campaignService.ListCampaigns())
}

// Search handles GET /campaigns/search?q=
func (h *CampaignHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	WriteOK(w, h.campaignService.SearchCampaigns(query))
}

// Get handles GET /campaigns/{id}
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetCampaign(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, campaign)
}

// Create handles POST /campaigns
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	campaign, err := h.campaignService.CreateCampaign(&req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, campaign)
}

// Update handles PUT /campaigns/{id}
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.UpdateCampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, campaign)
}

// ChangeStatus handles POST /campaigns/{id}/status
func (h *CampaignHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status models.CampaignStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	campaign, err := h.campaignService.ChangeCampaignStatus(id, req.Status)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, campaign)
}

// Delete handles DELETE /campaigns/{id}?force=true
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.campaignService.DeleteCampaign(id, forceFlag(r)); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}
