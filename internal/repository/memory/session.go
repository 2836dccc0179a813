package memory

import (
	"context"
	"sync"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
)

// SessionRepo implements repository.SessionRepository in process memory
type SessionRepo struct {
	sessions map[int64]domain.Session
	mu       sync.RWMutex
}

// NewSessionRepo creates an empty in-memory session store
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[int64]domain.Session)}
}

// Get returns a copy of the user's session
func (r *SessionRepo) Get(_ context.Context, userID int64) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[userID]
	if !exists {
		return nil, nil
	}
	return &s, nil
}

// Save stores a copy of the session
func (r *SessionRepo) Save(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.UserID] = *s
	return nil
}

// Delete removes the user's session
func (r *SessionRepo) Delete(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
	return nil
}

// DeleteStale removes sessions not updated since before
func (r *SessionRepo) DeleteStale(_ context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(before) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of stored sessions
func (r *SessionRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}
