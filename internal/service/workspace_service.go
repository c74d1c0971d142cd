package service

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"civicboard/internal/models"
	"civicboard/internal/notify"
	"civicboard/internal/sanitize"
	"civicboard/internal/snapshot"
	"civicboard/internal/store"
)

// WorkspaceService holds the operator-facing workspace state: the
// assistant chat history, dashboard preferences and the login session.
type WorkspaceService struct {
	chat      *store.Store[*models.ChatMessage]
	prefsFile *snapshot.File[models.Preferences]
	notifier  *notify.Notifier

	mu      sync.Mutex
	prefs   models.Preferences
	session *models.Session
}

// NewWorkspaceService creates a workspace service, loading saved
// preferences when a usable snapshot exists
func NewWorkspaceService(chat *store.Store[*models.ChatMessage], prefsFile *snapshot.File[models.Preferences], notifier *notify.Notifier) *WorkspaceService {
	s := &WorkspaceService{
		chat:      chat,
		prefsFile: prefsFile,
		notifier:  notifier,
		prefs:     models.DefaultPreferences(),
	}

	if prefsFile != nil {
		if saved, err := prefsFile.Load(); err == nil {
			s.prefs = saved
		} else {
			log.Printf("using default preferences: %v", err)
		}
	}
	return s
}

// ChatHistory returns the conversation so far
func (s *WorkspaceService) ChatHistory() []*models.ChatMessage {
	return s.chat.All()
}

// SendChatMessage appends the operator's message and the assistant's reply
func (s *WorkspaceService) SendChatMessage(text string) ([]*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Message: "message text is required"}
	}
	if err := sanitize.CheckDescription("message", text); err != nil {
		s.notifier.Error(err.Error())
		return nil, &ValidationError{Message: err.Error()}
	}

	now := time.Now().UTC()
	userMsg := &models.ChatMessage{Text: text, Sender: models.ChatSenderUser, Timestamp: now}
	if _, err := s.chat.Create(userMsg); err != nil {
		s.notifier.Error("Could not save message: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	reply := &models.ChatMessage{
		Text:      assistantReply(text),
		Sender:    models.ChatSenderBot,
		Timestamp: now.Add(time.Second),
	}
	if _, err := s.chat.Create(reply); err != nil {
		s.notifier.Error("Could not save message: " + err.Error())
		return nil, &StorageError{Message: err.Error()}
	}

	return []*models.ChatMessage{userMsg, reply}, nil
}

// ClearChatHistory removes every stored message
func (s *WorkspaceService) ClearChatHistory() error {
	for _, msg := range s.chat.All() {
		if err := s.chat.Delete(msg.ID, true); err != nil {
			s.notifier.Error("Could not clear chat history: " + err.Error())
			return &StorageError{Message: err.Error()}
		}
	}
	s.notifier.Success("Chat history cleared")
	return nil
}

// Preferences returns the current dashboard settings
func (s *WorkspaceService) Preferences() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// UpdatePreferences validates and persists new dashboard settings
func (s *WorkspaceService) UpdatePreferences(req *UpdatePreferencesRequest) (models.Preferences, error) {
	if err := req.Validate(); err != nil {
		s.notifier.Error(err.Error())
		return models.Preferences{}, &ValidationError{Message: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.prefs
	if req.NotificationsEnabled != nil {
		updated.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.AutoRefresh != nil {
		updated.AutoRefresh = *req.AutoRefresh
	}
	if req.RefreshInterval != nil {
		updated.RefreshInterval = *req.RefreshInterval
	}
	if req.Theme != nil {
		updated.Theme = *req.Theme
	}

	if s.prefsFile != nil {
		if err := s.prefsFile.Save(updated); err != nil {
			s.notifier.Error("Could not save preferences: " + err.Error())
			return models.Preferences{}, &StorageError{Message: err.Error()}
		}
	}

	s.prefs = updated
	s.notifier.Success("Preferences saved")
	return updated, nil
}

// Session returns the current login session, or a logged-out placeholder
func (s *WorkspaceService) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return models.Session{IsLoggedIn: false}
	}
	s.session.LastActivity = time.Now().UTC()
	return *s.session
}

// Login starts a session for the named operator
func (s *WorkspaceService) Login(username string) (models.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.Session{}, &ValidationError{Message: "username is required"}
	}
	if err := sanitize.CheckName("username", username); err != nil {
		return models.Session{}, &ValidationError{Message: err.Error()}
	}

	now := time.Now().UTC()
	session := models.Session{
		Token:        uuid.New().String(),
		IsLoggedIn:   true,
		Username:     username,
		LoginTime:    now,
		LastActivity: now,
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("Welcome back, %s!", username))
	return session, nil
}

// Logout ends the current session
func (s *WorkspaceService) Logout() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	s.notifier.Info("You have been logged out")
}

// assistantReply produces the canned assistant answer for a message.
// The matching is keyword based; anything unrecognized gets pointed at
// the dashboard modules.
func assistantReply(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "campaign"):
		return "You can manage campaigns from the Campaigns tab. Try creating one with the New Campaign button."
	case strings.Contains(lower, "event"):
		return "Events and their attendee lists live in the Events tab. Registrations update as attendees are added."
	case strings.Contains(lower, "survey"):
		return "Surveys start as drafts. Launch one to begin collecting resident responses."
	case strings.Contains(lower, "export"):
		return "Most lists have an Export button that downloads a dated CSV or JSON file."
	case strings.Contains(lower, "help"):
		return "I can answer questions about campaigns, content, segments, events, surveys and integrations."
	default:
		return "I'm not sure about that one. Ask me about campaigns, events, surveys or exports."
	}
}

// UpdatePreferencesRequest represents a partial preferences update
type UpdatePreferencesRequest struct {
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
	AutoRefresh          *bool   `json:"auto_refresh,omitempty"`
	RefreshInterval      *int    `json:"refresh_interval,omitempty"`
	Theme                *string `json:"theme,omitempty"`
}

// Validate checks the request fields
func (r *UpdatePreferencesRequest) Validate() error {
	if r.RefreshInterval != nil && *r.RefreshInterval < 5 {
		return fmt.Errorf("refresh interval must be at least 5 seconds")
	}
	if r.Theme != nil && *r.Theme != "light" && *r.Theme != "dark" {
		return fmt.Errorf("theme must be 'light' or 'dark'")
	}
	return nil
}
