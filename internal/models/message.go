package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Sender identifies who produced a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Keyword links a term in a translated text to its English equivalent
type Keyword struct {
	Term    string `json:"term"`
	English string `json:"english"`
}

// Message represents a single chat message
type Message struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	Sender          Sender    `json:"sender"`
	Lang            string    `json:"lang"`
	Keywords        []Keyword `json:"keywords"`
	Recommendations []string  `json:"recommendations"`
	VisualAid       string    `json:"visualAid,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// IsBot reports whether the message was produced by the backend
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}

// HasVisualAid reports whether the message carries an image reference
func (m Message) HasVisualAid() bool {
	return m.VisualAid != ""
}

// Clone returns a deep copy of the message
func (m Message) Clone() Message {
	out := m
	if m.Keywords != nil {
		out.Keywords = append([]Keyword(nil), m.Keywords...)
	}
	if m.Recommendations != nil {
		out.Recommendations = append([]string(nil), m.Recommendations...)
	}
	return out
}

// NewUserMessage creates a user message in the given language
func NewUserMessage(text, lang string) Message {
	return Message{
		ID:              NewID(),
		Text:            text,
		Sender:          SenderUser,
		Lang:            lang,
		Keywords:        []Keyword{},
		Recommendations: []string{},
		CreatedAt:       time.Now(),
	}
}

// NewBotMessage creates a bot message with no auxiliary data
func NewBotMessage(text, lang string) Message {
	m := NewUserMessage(text, lang)
	m.Sender = SenderBot
	return m
}

// WelcomeMessage returns the synthetic bot message shown in an empty chat
func WelcomeMessage(text string) Message {
	m := NewBotMessage(text, DefaultDisplayLang)
	m.ID = WelcomeID
	return m
}

// Conversation is a titled sequence of messages kept for the session
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Chat      []Message `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the conversation
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	out := *c
	out.Chat = CloneChat(c.Chat)
	return &out
}

// CloneChat deep-copies a message slice
func CloneChat(chat []Message) []Message {
	out := make([]Message, len(chat))
	for i, m := range chat {
		out[i] = m.Clone()
	}
	return out
}

// Title returns the first TitleMaxLength characters of text
func Title(text string) string {
	if utf8.RuneCountInString(text) <= TitleMaxLength {
		return text
	}
	return string([]rune(text)[:TitleMaxLength])
}

// NewID returns a fresh identifier for messages and conversations
func NewID() string {
	return uuid.NewString()
}
