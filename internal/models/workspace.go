package models

import (
	"fmt"
	"time"
)

// ChatSender identifies who wrote a chat message
type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderBot  ChatSender = "bot"
)

// ChatMessage represents one entry in the assistant chat history
type ChatMessage struct {
	ID        int        `json:"id"`
	Text      string     `json:"text"`
	Sender    ChatSender `json:"sender"`
	Timestamp time.Time  `json:"timestamp"`
}

// RecordID returns the message's unique ID
func (m *ChatMessage) RecordID() int { return m.ID }

// SetRecordID assigns the message's unique ID
func (m *ChatMessage) SetRecordID(id int) { m.ID = id }

// DisplayFields returns the fields searched by the list view
func (m *ChatMessage) DisplayFields() []string {
	return []string{m.Text, string(m.Sender)}
}

// Validate checks if the chat message fields are valid
func (m *ChatMessage) Validate() error {
	if m.Text == "" {
		return fmt.Errorf("message text is required")
	}
	if m.Sender != ChatSenderUser && m.Sender != ChatSenderBot {
		return fmt.Errorf("invalid sender: must be 'user' or 'bot'")
	}
	return nil
}

// IsProtected always returns false; chat history has no protected entries
func (m *ChatMessage) IsProtected() bool { return false }

// Preferences holds per-operator dashboard settings
type Preferences struct {
	NotificationsEnabled bool   `json:"notifications_enabled"`
	AutoRefresh          bool   `json:"auto_refresh"`
	RefreshInterval      int    `json:"refresh_interval"`
	Theme                string `json:"theme"`
}

// DefaultPreferences returns the settings used before the operator saves any
func DefaultPreferences() Preferences {
	return Preferences{
		NotificationsEnabled: true,
		AutoRefresh:          false,
		RefreshInterval:      60,
		Theme:                "light",
	}
}

// Session represents the operator's login session
type Session struct {
	Token        string    `json:"token"`
	IsLoggedIn   bool      `json:"is_logged_in"`
	Username     string    `json:"username,omitempty"`
	LoginTime    time.Time `json:"login_time"`
	LastActivity time.Time `json:"last_activity"`
}
