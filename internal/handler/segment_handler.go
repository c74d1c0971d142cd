package handler

import (
	"io"
	"net/http"
	"time"

	"civicboard/internal/export"
	"civicboard/internal/models"
	"civicboard/internal/service"

	"github.com/gorilla/mux"
)

// maxImportBytes caps the accepted segment import payload
const maxImportBytes = 1 << 20

// SegmentHandler handles HTTP requests for audience segments
type SegmentHandler struct {
	segmentService *service.SegmentService
}

// NewSegmentHandler creates a new segment handler
func NewSegmentHandler(segmentService *service.SegmentService) *SegmentHandler {
	return &SegmentHandler{
		segmentService: segmentService,
	}
}

// RegisterRoutes attaches the segment endpoints to the router
func (h *SegmentHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/segments", h.List).Methods(http.MethodGet)
	r.HandleFunc("/segments", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/segments/import", h.Import).Methods(http.MethodPost)
	r.HandleFunc("/segments/export", h.Export).Methods(http.MethodGet)
	r.HandleFunc("/segments/search/{q}", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/segments/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/segments/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/segments/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/segments/{id}/status", h.ChangeStatus).Methods(http.MethodPost)
}

// List handles GET /segments
func (h *SegmentHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, h.segmentService.ListSegments())
}

// Search handles GET /segments/search/{q}
func (h *SegmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["q"]
	WriteOK(w, h.segmentService.SearchSegments(query))
}

// Get handles GET /segments/{id}
func (h *SegmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	segment, err := h.segmentService.GetSegment(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, segment)
}

// Create handles POST /segments
func (h *SegmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSegmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	segment, err := h.segmentService.CreateSegment(&req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, segment)
}

// Update handles PUT /segments/{id}
func (h *SegmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.UpdateSegmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	segment, err := h.segmentService.UpdateSegment(id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, segment)
}

// ChangeStatus handles POST /segments/{id}/status
func (h *SegmentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status models.SegmentStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	segment, err := h.segmentService.ChangeSegmentStatus(id, req.Status)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, segment)
}

// Delete handles DELETE /segments/{id}?force=true
func (h *SegmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.segmentService.DeleteSegment(id, forceFlag(r)); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

// Import handles POST /segments/import - replays a previously exported file
func (h *SegmentHandler) Import(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Could not read request body")
		return
	}

	result, err := h.segmentService.ImportSegments(payload)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, result)
}

// Export handles GET /segments/export - downloads all segments as JSON
func (h *SegmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	body, filename, err := export.SegmentsJSON(h.segmentService.ListSegments(), time.Now().UTC())
	if err != nil {
		HandleServiceError(w, &service.StorageError{Message: err.Error()})
		return
	}

	writeDownload(w, filename, "application/json", body)
}
