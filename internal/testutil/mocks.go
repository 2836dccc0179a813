package testutil

import (
	"context"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUserExists(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetLanguage(ctx context.Context, userID int64) (domain.Language, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Language), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) SetLanguage(ctx context.Context, userID int64, lang domain.Language) error {
	args := m.Called(ctx, userID, lang)
	return args.Error(0)
}

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(ctx context.Context, userID int64) (*domain.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, s *domain.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteStale(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

func (m *MockSessionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockNotificationSink is a mock for NotificationSink
type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) Send(ctx context.Context, recipientID int64, text string) error {
	args := m.Called(ctx, recipientID, text)
	return args.Error(0)
}

// MockTicketPublisher is a mock for TicketPublisher
type MockTicketPublisher struct {
	mock.Mock
}

func (m *MockTicketPublisher) PublishTicket(ctx context.Context, t domain.Ticket, report domain.DispatchReport) {
	m.Called(ctx, t, report)
}
