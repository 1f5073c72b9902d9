package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager tracks interactive shell sessions. The parser itself is
// stateless; the session carries the only cross-line state there is: the
// current navigation context and the line history.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// Session is one interactive shell session.
type Session struct {
	SessionID string
	Context   Context
	History   []string
	CreatedAt time.Time
	LastUsed  time.Time
	mu        sync.RWMutex
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// NewSession creates a session rooted at sys level. An empty sessionID
// gets a fresh UUID.
func NewSession(sessionID string) *Session {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	now := time.Now()
	return &Session{
		SessionID: sessionID,
		Context:   NewSysContext(),
		CreatedAt: now,
		LastUsed:  now,
	}
}

// GetOrCreate returns the session for the ID, creating it when absent.
func (m *Manager) GetOrCreate(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sessionID != "" {
		if s, ok := m.sessions[sessionID]; ok {
			s.touch()
			return s
		}
	}
	s := NewSession(sessionID)
	m.sessions[s.SessionID] = s
	return s
}

// Delete removes a session, typically when its shell exits.
func (m *Manager) Delete(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	delete(m.sessions, sessionID)
	return nil
}

func (s *Session) touch() {
	s.mu.Lock()
	s.LastUsed = time.Now()
	s.mu.Unlock()
}

// GetContext returns the session's current navigation context.
func (s *Session) GetContext() Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Context
}

// SetContext replaces the navigation context after a successful
// navigation command.
func (s *Session) SetContext(ctx Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Context = ctx
	s.LastUsed = time.Now()
}

// AddHistory appends an input line to the session history.
func (s *Session) AddHistory(line string) {
	if line == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, line)
	s.LastUsed = time.Now()
}

// GetHistory returns a copy of the line history.
func (s *Session) GetHistory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.History))
	copy(out, s.History)
	return out
}
