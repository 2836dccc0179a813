package repository

import (
	"context"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
)

// UserRepository defines user preference operations
type UserRepository interface {
	EnsureUserExists(ctx context.Context, userID int64) error
	GetLanguage(ctx context.Context, userID int64) (domain.Language, bool, error)
	SetLanguage(ctx context.Context, userID int64, lang domain.Language) error
}

// SessionRepository stores in-flight intake sessions.
// Get returns nil, nil when the user has no session.
type SessionRepository interface {
	Get(ctx context.Context, userID int64) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, userID int64) error
	DeleteStale(ctx context.Context, before time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}
