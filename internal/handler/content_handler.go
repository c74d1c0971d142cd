package handler

import (
	"net/http"

	"civicboard/internal/models"
	"civicboard/internal/service"

	"github.com/gorilla/mux"
)

// ContentHandler handles HTTP requests for the content repository
type ContentHandler struct {
	contentService *service.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// RegisterRoutes attaches the content endpoints to the router
func (h *ContentHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/content", h.List).Methods(http.MethodGet)
	r.HandleFunc("/content", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/content/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/content/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/content/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/content/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/content/{id}/status", h.ChangeStatus).Methods(http.MethodPost)
}

// List handles GET /content
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, h.contentService.ListContent())
}

// Search handles GET /content/search?q=
func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	WriteOK(w, h.contentService.SearchContent(query))
}

// Get handles GET /content/{id}
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.contentService.GetContent(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, item)
}

// Create handles POST /content
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateContentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.contentService.CreateContent(&req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, item)
}

// Update handles PUT /content/{id}
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.UpdateContentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.contentService.UpdateContent(id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, item)
}

// ChangeStatus handles POST /content/{id}/status
func (h *ContentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status models.ContentStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.contentService.ChangeContentStatus(id, req.Status)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, item)
}

// Delete handles DELETE /content/{id}?force=true
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.contentService.DeleteContent(id, forceFlag(r)); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}
