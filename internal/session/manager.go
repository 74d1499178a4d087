package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound covers unknown and already-closed sessions.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired means the lease lapsed before the client renewed it.
	ErrSessionExpired = errors.New("session expired")
	// ErrTooManySessions means the manager is at capacity.
	ErrTooManySessions = errors.New("session limit reached")
)

// Session is one connected client's lease. A client keeps its session alive
// by acting; an idle session lapses after the lease period and the player's
// seat becomes reclaimable via a reconnect token.
type Session struct {
	ID       string
	PlayerID string
	GameID   string
	Expires  time.Time
}

// Manager tracks sessions under a sliding lease.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	lease    time.Duration
	limit    int
	logger   *zap.Logger
	now      func() time.Time
}

// NewManager creates a session manager with the given lease period.
func NewManager(lease time.Duration, limit int, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		lease:    lease,
		limit:    limit,
		logger:   logger,
		now:      time.Now,
	}
}

// Open creates a session for a player.
func (m *Manager) Open(playerID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.limit > 0 && len(m.sessions) >= m.limit {
		return nil, ErrTooManySessions
	}
	s := &Session{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Expires:  m.now().Add(m.lease),
	}
	m.sessions[s.ID] = s
	m.logger.Info("session opened",
		zap.String("session_id", s.ID),
		zap.String("player_id", playerID))
	return s, nil
}

// Touch renews the lease and returns the session. Expired sessions are
// removed and reported as such.
func (m *Manager) Touch(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.now().After(s.Expires) {
		delete(m.sessions, sessionID)
		return nil, ErrSessionExpired
	}
	s.Expires = m.now().Add(m.lease)
	return s, nil
}

// Bind attaches a session to a game.
func (m *Manager) Bind(sessionID, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	s.GameID = gameID
	return nil
}

// Close removes a session.
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; ok {
		delete(m.sessions, sessionID)
		m.logger.Info("session closed", zap.String("session_id", sessionID))
	}
}

// CloseAll drops every session, used during shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.sessions)
	m.sessions = make(map[string]*Session)
	m.logger.Info("all sessions closed", zap.Int("count", n))
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CleanupExpiredSessions sweeps lapsed leases until the context is done.
// Run it as a goroutine next to the server.
func (m *Manager) CleanupExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(m.lease / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.sweep(); removed > 0 {
				m.logger.Info("expired sessions removed", zap.Int("count", removed))
			}
		}
	}
}

func (m *Manager) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for id, s := range m.sessions {
		if now.After(s.Expires) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
