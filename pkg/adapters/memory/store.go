// Package memory provides in-memory implementations of the folio ports.
// State lives for the life of the process; it is explicitly best-effort and
// resettable, which is the intended posture for the chat history.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

// Store implements ports.MessageStore in memory.
// Safe for concurrent use. Ids are assigned from a store-scoped counter under
// the same lock as the append itself, so they are unique and monotonic.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string][]domain.Message
	touched     map[string]time.Time
	nextID      int64
	maxSessions int
	now         func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithMaxSessions bounds the number of sessions retained. When the bound is
// exceeded, the least-recently-touched session is evicted wholesale. Zero
// means unbounded.
func WithMaxSessions(n int) Option {
	return func(s *Store) {
		s.maxSessions = n
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string][]domain.Message),
		touched:  make(map[string]time.Time),
		nextID:   1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append records a new turn and returns it with its assigned id.
func (s *Store) Append(ctx context.Context, role domain.Role, content, sessionID string) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := domain.Message{
		ID:        s.nextID,
		Role:      role,
		Content:   content,
		SessionID: sessionID,
	}
	s.nextID++

	if _, known := s.sessions[sessionID]; !known {
		s.evictLocked()
	}
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
	s.touched[sessionID] = s.now()

	return msg, nil
}

// evictLocked drops the least-recently-touched session to make room for a new
// one. Caller holds the write lock.
func (s *Store) evictLocked() {
	if s.maxSessions <= 0 || len(s.sessions) < s.maxSessions {
		return
	}

	var oldest string
	var oldestAt time.Time
	for id, at := range s.touched {
		if oldest == "" || at.Before(oldestAt) {
			oldest, oldestAt = id, at
		}
	}
	if oldest != "" {
		delete(s.sessions, oldest)
		delete(s.touched, oldest)
	}
}

// Recent returns up to the last ports.HistoryLimit turns for the session,
// oldest first. No side effects.
func (s *Store) Recent(ctx context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.sessions[sessionID]
	if len(msgs) > ports.HistoryLimit {
		msgs = msgs[len(msgs)-ports.HistoryLimit:]
	}

	// Copy on read so callers can't mutate store state through the slice.
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Sessions returns the session ids currently holding history.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

// Clear removes all history for a session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	delete(s.touched, sessionID)
	return nil
}
