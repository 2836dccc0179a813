package testutil

import (
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestRequester creates a test requester
func NewTestRequester(id int64) domain.Requester {
	return domain.Requester{
		ID:          id,
		DisplayName: "Test User",
		Handle:      "test_user",
	}
}

// NewTestTicket creates a complete ticket routed to regionKey
func NewTestTicket(requesterID int64, regionKey string) domain.Ticket {
	return domain.Ticket{
		RequesterID:          requesterID,
		RequesterDisplayName: "Test User",
		RequesterHandle:      "test_user",
		ApplianceKey:         "air_conditioners",
		RegionKey:            regionKey,
		ProblemText:          "не работает",
		PhoneRaw:             "+998901234567",
		AddressText:          "ул. Мира 1",
		Language:             domain.LanguageRU,
	}
}

// FixedClock returns a clock function that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
