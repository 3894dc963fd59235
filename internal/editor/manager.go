package editor

import (
	"sync"

	"github.com/socialspark/socialspark-bot/internal/domain"
	"go.uber.org/fx"
)

// Manager tracks at most one editing session per chat.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Open replaces any existing session for the chat with a fresh one seeded
// from the draft.
func (m *Manager) Open(chatID int64, draft domain.ContentDraft) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := NewSession(draft)
	m.sessions[chatID] = session
	return session
}

// Get returns the chat's active session, or nil when none is open.
func (m *Manager) Get(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[chatID]
}

func (m *Manager) Close(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}

var Module = fx.Module("editor",
	fx.Provide(NewManager),
)
