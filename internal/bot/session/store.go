// Package session keeps the per-chat conversational state: the selected
// content type, the last free-text request and the generation settings.
// State lives only in process memory and is never persisted.
package session

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/hrygo/contentmaker/internal/bot/content"
)

// AiSettings are the per-chat generation directives.
type AiSettings struct {
	Language content.Language
	Length   content.Length
	Style    content.Style
}

// DefaultSettings returns the settings applied to unseen chats.
func DefaultSettings() AiSettings {
	return AiSettings{
		Language: content.LanguageRU,
		Length:   content.LengthMedium,
		Style:    content.StyleFriendly,
	}
}

// Instructions combines the three directives into a single system prompt
// fragment: language first, then length, then style.
func (s AiSettings) Instructions() string {
	return strings.Join([]string{
		s.Language.Instruction(),
		s.Length.Instruction(),
		s.Style.Instruction(),
	}, " ")
}

// Summary renders the settings for display.
func (s AiSettings) Summary() string {
	return s.Language.DisplayName() + " | " + s.Length.DisplayName() + " | " + s.Style.DisplayName()
}

// ChatSession is the mutable state of one chat. The zero value plus default
// settings is indistinguishable from a chat that was never seen.
type ChatSession struct {
	ContentType content.Type // empty when unscoped
	LastRequest string
	Settings    AiSettings
}

// Scoped reports whether a content type has been selected.
func (c ChatSession) Scoped() bool {
	return c.ContentType != ""
}

// Store holds the sessions of all chats, keyed by chat id. Every mutation is
// a single critical section, so per-chat operations are linearizable and
// concurrent settings updates for the same chat cannot lose writes.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*ChatSession
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*ChatSession),
	}
}

// get returns the session for chatID, creating it lazily.
// Callers must hold s.mu.
func (s *Store) get(chatID int64) *ChatSession {
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &ChatSession{Settings: DefaultSettings()}
		s.sessions[chatID] = sess
	}
	return sess
}

// Get returns a snapshot of the chat's session. Unseen chats yield the
// defaults without creating an entry.
func (s *Store) Get(chatID int64) ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[chatID]; ok {
		return *sess
	}
	return ChatSession{Settings: DefaultSettings()}
}

// Update applies fn to the chat's session as one atomic read-modify-write.
func (s *Store) Update(chatID int64, fn func(*ChatSession)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.get(chatID))
}

func (s *Store) SetContentType(chatID int64, contentType content.Type) {
	s.Update(chatID, func(sess *ChatSession) {
		sess.ContentType = contentType
	})
	slog.Debug("content type selected", "chat_id", chatID, "content_type", contentType)
}

func (s *Store) ClearContentType(chatID int64) {
	s.Update(chatID, func(sess *ChatSession) {
		sess.ContentType = ""
	})
}

func (s *Store) SetLastRequest(chatID int64, request string) {
	s.Update(chatID, func(sess *ChatSession) {
		sess.LastRequest = request
	})
}

// LastRequest returns the remembered free-text request, if any.
func (s *Store) LastRequest(chatID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok || sess.LastRequest == "" {
		return "", false
	}
	return sess.LastRequest, true
}

// UpdateSettings atomically applies one settings change without disturbing
// the other fields.
func (s *Store) UpdateSettings(chatID int64, fn func(*AiSettings)) {
	s.Update(chatID, func(sess *ChatSession) {
		fn(&sess.Settings)
	})
}

// ResetConversation clears the content type and last request, keeping the
// settings.
func (s *Store) ResetConversation(chatID int64) {
	s.Update(chatID, func(sess *ChatSession) {
		sess.ContentType = ""
		sess.LastRequest = ""
	})
}

// ResetAll clears everything for the chat, reverting settings to defaults.
func (s *Store) ResetAll(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// ActiveChatCount returns the number of chats with session state.
func (s *Store) ActiveChatCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ResetEverything clears the state of all chats.
func (s *Store) ResetEverything() {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.sessions)
	s.sessions = make(map[int64]*ChatSession)
	slog.Info("cleared all chat sessions", "count", count)
}
