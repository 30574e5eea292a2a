// Package history holds the in-memory conversation store for a chat session.
//
// The store is the single source of truth for rendering: the displayed chat,
// the list of past conversations (most recent first), the active conversation
// id and the active visual aid. Nothing is persisted.
package history

import (
	"sync"
	"time"

	"github.com/diogo/medilingua/internal/models"
)

// Store manages the displayed chat and the session's conversation history
type Store struct {
	mu sync.RWMutex

	chat            []models.Message
	conversations   []*models.Conversation
	activeID        string
	activeVisualAid string

	now func() time.Time
}

// NewStore creates a store showing the initial welcome message
func NewStore() *Store {
	return &Store{
		chat: []models.Message{models.WelcomeMessage(models.WelcomeText)},
		now:  time.Now,
	}
}

// AppendUserMessage appends a user message to the displayed chat
func (s *Store) AppendUserMessage(text, lang string) models.Message {
	msg := models.NewUserMessage(text, lang)
	msg.CreatedAt = s.now()
	return s.AppendMessage(msg)
}

// AppendBotMessage appends a bot message built from a backend payload
func (s *Store) AppendBotMessage(msg models.Message) models.Message {
	msg.Sender = models.SenderBot
	if msg.ID == "" {
		msg.ID = models.NewID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.now()
	}
	return s.AppendMessage(msg)
}

// AppendMessage appends msg as-is and returns a copy of it
func (s *Store) AppendMessage(msg models.Message) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chat = append(s.chat, msg.Clone())
	return msg.Clone()
}

// ReplaceText overwrites the text of a displayed message in place
func (s *Store) ReplaceText(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.chat {
		if s.chat[i].ID == id {
			s.chat[i].Text = text
			return true
		}
	}
	return false
}

// LastText returns the text of the newest displayed message
func (s *Store) LastText() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.chat) == 0 {
		return "", false
	}
	return s.chat[len(s.chat)-1].Text, true
}

// Commit records the displayed chat in history.
// Without an active conversation a new one is created, prepended and made
// active; otherwise the active conversation's chat and title are overwritten.
func (s *Store) Commit(triggerText string) *models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	title := models.Title(triggerText)

	if s.activeID != "" {
		if conv := s.find(s.activeID); conv != nil {
			conv.Chat = models.CloneChat(s.chat)
			conv.Title = title
			conv.UpdatedAt = now
			return conv.Clone()
		}
	}

	conv := &models.Conversation{
		ID:        models.NewID(),
		Title:     title,
		Chat:      models.CloneChat(s.chat),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations = append([]*models.Conversation{conv}, s.conversations...)
	s.activeID = conv.ID
	return conv.Clone()
}

// StartNewChat clears the active conversation and shows a fresh welcome message.
// History is left untouched.
func (s *Store) StartNewChat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeID = ""
	s.chat = []models.Message{models.WelcomeMessage(models.NewChatWelcomeText)}
	s.activeVisualAid = ""
}

// Load displays a stored conversation and makes it active.
// The active visual aid becomes the newest bot message carrying one.
func (s *Store) Load(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.find(id)
	if conv == nil {
		return false
	}

	s.activeID = id
	s.chat = models.CloneChat(conv.Chat)
	s.activeVisualAid = latestVisualAid(s.chat)
	return true
}

func latestVisualAid(chat []models.Message) string {
	for i := len(chat) - 1; i >= 0; i-- {
		if chat[i].IsBot() && chat[i].HasVisualAid() {
			return chat[i].VisualAid
		}
	}
	return ""
}

// Chat returns a copy of the displayed messages
func (s *Store) Chat() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneChat(s.chat)
}

// Len returns the number of displayed messages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chat)
}

// Message returns a displayed message by id
func (s *Store) Message(id string) (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.chat {
		if m.ID == id {
			return m.Clone(), true
		}
	}
	return models.Message{}, false
}

// History returns copies of all conversations, most recent first
func (s *Store) History() []*models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		out[i] = c.Clone()
	}
	return out
}

// Get returns a copy of a stored conversation
func (s *Store) Get(id string) (*models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv := s.find(id)
	if conv == nil {
		return nil, false
	}
	return conv.Clone(), true
}

// ActiveID returns the active conversation id, empty when none
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Active returns a copy of the active conversation
func (s *Store) Active() (*models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeID == "" {
		return nil, false
	}
	conv := s.find(s.activeID)
	if conv == nil {
		return nil, false
	}
	return conv.Clone(), true
}

// ActiveVisualAid returns the image reference shown in the visual aid panel
func (s *Store) ActiveVisualAid() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeVisualAid
}

// SetActiveVisualAid sets the image reference shown in the visual aid panel
func (s *Store) SetActiveVisualAid(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeVisualAid = url
}

// find must be called with the lock held
func (s *Store) find(id string) *models.Conversation {
	for _, c := range s.conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}
