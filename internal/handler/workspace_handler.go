package handler

import (
	"net/http"

	"civicboard/internal/service"

	"github.com/gorilla/mux"
)

// WorkspaceHandler handles HTTP requests for chat history, preferences
// and the login session
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
	}
}

// RegisterRoutes attaches the workspace endpoints to the router
func (h *WorkspaceHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/chat/history", h.ChatHistory).Methods(http.MethodGet)
	r.HandleFunc("/chat/history", h.SendMessage).Methods(http.MethodPost)
	r.HandleFunc("/chat/history", h.ClearChat).Methods(http.MethodDelete)
	r.HandleFunc("/preferences", h.GetPreferences).Methods(http.MethodGet)
	r.HandleFunc("/preferences", h.UpdatePreferences).Methods(http.MethodPut)
	r.HandleFunc("/session", h.GetSession).Methods(http.MethodGet)
	r.HandleFunc("/session/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/session/logout", h.Logout).Methods(http.MethodPost)
}

// ChatHistory handles GET /chat/history
func (h *WorkspaceHandler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, h.workspaceService.ChatHistory())
}

// SendMessage handles POST /chat/history
func (h *WorkspaceHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	messages, err := h.workspaceService.SendChatMessage(req.Text)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteCreated(w, messages)
}

// ClearChat handles DELETE /chat/history
func (h *WorkspaceHandler) ClearChat(w http.ResponseWriter, r *http.Request) {
	if err := h.workspaceService.ClearChatHistory(); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

// GetPreferences handles GET /preferences
func (h *WorkspaceHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, h.workspaceService.Preferences())
}

// UpdatePreferences handles PUT /preferences
func (h *WorkspaceHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePreferencesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	prefs, err := h.workspaceService.UpdatePreferences(&req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, prefs)
}

// GetSession handles GET /session
func (h *WorkspaceHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, h.workspaceService.Session())
}

// Login handles POST /session/login
func (h *WorkspaceHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.workspaceService.Login(req.Username)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, session)
}

// Logout handles POST /session/logout
func (h *WorkspaceHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.workspaceService.Logout()
	WriteNoContent(w)
}
