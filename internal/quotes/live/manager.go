package live

import (
	"context"
	"sync"
	"time"

	"photobooth_backend/internal/quotes/domain"
	"photobooth_backend/platform/logger"

	"github.com/google/uuid"
)

// Manager tracks open sessions and reaps idle ones.
type Manager struct {
	estimator Estimator
	delay     time.Duration
	idleTTL   time.Duration
	now       func() time.Time
	log       *logger.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a session manager. delay is the debounce interval for
// field edits; sessions with no listener idle longer than idleTTL are reaped.
func NewManager(estimator Estimator, delay, idleTTL time.Duration, log *logger.Logger) *Manager {
	return &Manager{
		estimator: estimator,
		delay:     delay,
		idleTTL:   idleTTL,
		now:       time.Now,
		log:       log,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Delay returns the debounce interval applied to field edits.
func (m *Manager) Delay() time.Duration {
	return m.delay
}

// Create opens a session and prices the initial fields immediately.
func (m *Manager) Create(initial domain.EstimateInput) *Session {
	s := newSession(m.estimator, m.delay, m.now, m.log)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	s.start(initial)
	m.log.WithContext(s.ctx).Debug("live quote session opened")
	return s
}

// Get looks up an open session.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove closes and forgets a session. It reports whether the session existed.
func (m *Manager) Remove(id uuid.UUID) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
	return ok
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reap closes sessions idle since before now minus the idle TTL.
func (m *Manager) Reap(now time.Time) int {
	cutoff := now.Add(-m.idleTTL)

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	if len(idle) > 0 {
		m.log.Debug("idle live quote sessions reaped", "count", len(idle))
	}
	return len(idle)
}

// Run reaps idle sessions until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	interval := m.idleTTL / 2
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Reap(m.now())
		}
	}
}

// Close closes every session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
