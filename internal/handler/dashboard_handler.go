package handler

import (
	"net/http"
	"strconv"

	"civicboard/internal/activity"
	"civicboard/internal/notify"
	"civicboard/internal/service"

	"github.com/gorilla/mux"
)

// DashboardHandler serves the cross-cutting dashboard endpoints: global
// search, the notification feed, the activity feed and health
type DashboardHandler struct {
	searchService *service.SearchService
	health        *service.HealthChecker
	notifier      *notify.Notifier
	feed          *activity.Feed
	hub           *activity.Hub
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(searchService *service.SearchService, health *service.HealthChecker, notifier *notify.Notifier, feed *activity.Feed, hub *activity.Hub) *DashboardHandler {
	return &DashboardHandler{
		searchService: searchService,
		health:        health,
		notifier:      notifier,
		feed:          feed,
		hub:           hub,
	}
}

// RegisterRoutes attaches the dashboard endpoints to the router
func (h *DashboardHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/notifications", h.Notifications).Methods(http.MethodGet)
	r.HandleFunc("/notifications/{id}", h.DismissNotification).Methods(http.MethodDelete)
	r.HandleFunc("/activity", h.Activity).Methods(http.MethodGet)
	r.Handle("/ws/activity", h.hub).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

// Search handles GET /search?q= - matches across every module
func (h *DashboardHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	WriteOK(w, h.searchService.Search(query))
}

// Notifications handles GET /notifications - the live toast feed
func (h *DashboardHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, h.notifier.Active())
}

// DismissNotification handles DELETE /notifications/{id}
func (h *DashboardHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if !h.notifier.Dismiss(id) {
		WriteNotFoundError(w, "notification", id)
		return
	}

	WriteNoContent(w)
}

// Activity handles GET /activity?limit= - recent feed entries, newest first
func (h *DashboardHandler) Activity(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if limit > 100 {
		limit = 100
	}

	WriteOK(w, h.feed.Recent(limit))
}

// Health handles GET /health
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.health.CheckHealth()
	if err != nil {
		WriteInternalError(w)
		return
	}

	code := http.StatusOK
	if status.Status == service.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	WriteJSON(w, code, status)
}
