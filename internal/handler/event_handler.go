package handler

import (
	"net/http"
	"time"

	"civicboard/internal/export"
	"civicboard/internal/models"
	"civicboard/internal/service"

	"github.com/gorilla/mux"
)

// EventHandler handles HTTP requests for events and their attendees
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// RegisterRoutes attaches the event and attendee endpoints to the router
func (h *EventHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/calendar/events", h.List).Methods(http.MethodGet)
	r.HandleFunc("/calendar/events", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/calendar/events/export", h.Export).Methods(http.MethodGet)
	r.HandleFunc("/calendar/events/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/calendar/events/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/calendar/events/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/calendar/events/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/calendar/events/{id}/status", h.ChangeStatus).Methods(http.MethodPost)

	r.HandleFunc("/events/{id}/attendees", h.ListAttendees).Methods(http.MethodGet)
	r.HandleFunc("/events/{id}/attendees", h.AddAttendee).Methods(http.MethodPost)
	r.HandleFunc("/events/{id}/attendees/export", h.ExportAttendees).Methods(http.MethodGet)
	r.HandleFunc("/attendees/{id}", h.UpdateAttendee).Methods(http.MethodPut)
	r.HandleFunc("/attendees/{id}", h.DeleteAttendee).Methods(http.MethodDelete)
}

// List handles GET /calendar/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, h.eventService.ListEvents())
}

// Search handles GET /calendar/events/search?q=
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	WriteOK(w, h.eventService.SearchEvents(query))
}

// Get handles GET /calendar/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, event)
}

// Create handles POST /calendar/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.eventService.CreateEvent(&req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, event)
}

// Update handles PUT /calendar/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.UpdateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.eventService.UpdateEvent(id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, event)
}

// ChangeStatus handles POST /calendar/events/{id}/status
func (h *EventHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status models.EventStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.eventService.ChangeEventStatus(id, req.Status)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, event)
}

// Delete handles DELETE /calendar/events/{id}?force=true
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(id, forceFlag(r)); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

// Export handles GET /calendar/events/export - downloads the event list as CSV
func (h *EventHandler) Export(w http.ResponseWriter, r *http.Request) {
	body, filename, err := export.EventsCSV(h.eventService.ListEvents(), time.Now().UTC())
	if err != nil {
		HandleServiceError(w, &service.StorageError{Message: err.Error()})
		return
	}

	writeDownload(w, filename, "text/csv", body)
}

// ListAttendees handles GET /events/{id}/attendees
func (h *EventHandler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	attendees, err := h.eventService.ListAttendees(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, attendees)
}

// AddAttendee handles POST /events/{id}/attendees
func (h *EventHandler) AddAttendee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.AddAttendeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	attendee, err := h.eventService.AddAttendee(id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, attendee)
}

// UpdateAttendee handles PUT /attendees/{id}
func (h *EventHandler) UpdateAttendee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.UpdateAttendeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	attendee, err := h.eventService.UpdateAttendee(id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, attendee)
}

// DeleteAttendee handles DELETE /attendees/{id}?force=true
func (h *EventHandler) DeleteAttendee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.eventService.DeleteAttendee(id, forceFlag(r)); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

// ExportAttendees handles GET /events/{id}/attendees/export - downloads the
// attendee list for one event as CSV
func (h *EventHandler) ExportAttendees(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	attendees, err := h.eventService.ListAttendees(id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	body, filename, err := export.AttendeesCSV(event.Title, attendees, time.Now().UTC())
	if err != nil {
		HandleServiceError(w, &service.StorageError{Message: err.Error()})
		return
	}

	writeDownload(w, filename, "text/csv", body)
}
