package service

import (
	"context"
	"fmt"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
	"github.com/humoyunmirzo-code/tgbot/internal/engine"
	"github.com/humoyunmirzo-code/tgbot/internal/repository"

	"go.uber.org/zap"
)

// Event is one inbound user signal for the intake flow
type Event struct {
	UserID   int64
	Language domain.Language
	Input    engine.Input
}

// Reply is the outcome of handling an event
type Reply struct {
	Output  engine.Output
	Session domain.Session
	// Report is set when the event completed a ticket
	Report *domain.DispatchReport
}

// TicketSubmitter dispatches completed tickets
type TicketSubmitter interface {
	Submit(ctx context.Context, t domain.Ticket) domain.DispatchReport
}

// IntakeService runs the service request conversation for every user
type IntakeService struct {
	sessions  repository.SessionRepository
	engine    *engine.Engine
	submitter TicketSubmitter
	logger    *zap.Logger

	locks *userLocks
	now   func() time.Time
}

// NewIntakeService creates a new intake service
func NewIntakeService(
	sessions repository.SessionRepository,
	eng *engine.Engine,
	submitter TicketSubmitter,
	logger *zap.Logger,
) *IntakeService {
	return &IntakeService{
		sessions:  sessions,
		engine:    eng,
		submitter: submitter,
		logger:    logger,
		locks:     newUserLocks(),
		now:       time.Now,
	}
}

// Handle applies one event to the user's session.
// Events of the same user are processed one at a time; the user lock is
// released before a completed ticket is dispatched.
func (s *IntakeService) Handle(ctx context.Context, ev Event) (Reply, error) {
	reply, err := s.transition(ctx, ev)
	if err != nil {
		return Reply{}, err
	}

	if reply.Output.Kind == engine.OutputTicketReady && reply.Output.Ticket != nil {
		report := s.submitter.Submit(ctx, *reply.Output.Ticket)
		reply.Report = &report
	}

	return reply, nil
}

func (s *IntakeService) transition(ctx context.Context, ev Event) (Reply, error) {
	unlock := s.locks.lock(ev.UserID)
	defer unlock()

	stored, err := s.sessions.Get(ctx, ev.UserID)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to load session: %w", err)
	}

	current := domain.NewSession(ev.UserID, ev.Language)
	if stored != nil {
		current = *stored
	}

	next, out := s.engine.Transition(current, ev.Input)

	s.logger.Debug("Intake transition",
		zap.Int64("user_id", ev.UserID),
		zap.String("from", string(current.State)),
		zap.String("to", string(next.State)),
		zap.Stringer("output", out.Kind),
	)

	if next.State == domain.StateIdle {
		if stored != nil {
			if err := s.sessions.Delete(ctx, ev.UserID); err != nil {
				return Reply{}, fmt.Errorf("failed to clear session: %w", err)
			}
		}
		return Reply{Output: out, Session: next}, nil
	}

	next.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, &next); err != nil {
		// nothing is dispatched unless the submitted state is stored
		return Reply{}, fmt.Errorf("failed to save session: %w", err)
	}

	return Reply{Output: out, Session: next}, nil
}

// Start (re)enters the flow for the user in lang, discarding any previous answers
func (s *IntakeService) Start(ctx context.Context, userID int64, lang domain.Language) (Reply, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	next, out := s.engine.Transition(domain.NewSession(userID, lang), engine.Start())
	next.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, &next); err != nil {
		return Reply{}, fmt.Errorf("failed to save session: %w", err)
	}
	return Reply{Output: out, Session: next}, nil
}

// Reset drops the user's session, if any
func (s *IntakeService) Reset(ctx context.Context, userID int64) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	if err := s.sessions.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Session returns the user's current session, or nil when not in the flow
func (s *IntakeService) Session(ctx context.Context, userID int64) (*domain.Session, error) {
	stored, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return stored, nil
}
