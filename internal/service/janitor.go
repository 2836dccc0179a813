package service

import (
	"context"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/repository"

	"go.uber.org/zap"
)

// JanitorService expires abandoned intake sessions
type JanitorService struct {
	sessions    repository.SessionRepository
	idleTimeout time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewJanitorService creates a new janitor service
func NewJanitorService(sessions repository.SessionRepository, idleTimeout time.Duration, logger *zap.Logger) *JanitorService {
	return &JanitorService{
		sessions:    sessions,
		idleTimeout: idleTimeout,
		logger:      logger,
		now:         time.Now,
	}
}

// SweepIdleSessions removes sessions idle longer than the timeout.
// Removed users start from the main menu on their next message.
func (s *JanitorService) SweepIdleSessions(ctx context.Context) (int, error) {
	if s.idleTimeout <= 0 {
		return 0, nil
	}

	cutoff := s.now().Add(-s.idleTimeout)
	s.logger.Debug("Sweeping idle sessions", zap.Time("cutoff", cutoff))

	removed, err := s.sessions.DeleteStale(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to sweep idle sessions", zap.Error(err))
		return removed, err
	}

	if removed > 0 {
		s.logger.Info("Idle sessions expired", zap.Int("removed", removed))
	}
	return removed, nil
}
