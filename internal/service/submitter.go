package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationSink delivers ticket text to one staff recipient
type NotificationSink interface {
	Send(ctx context.Context, recipientID int64, text string) error
}

// TicketPublisher mirrors submitted tickets to an event stream, best effort
type TicketPublisher interface {
	PublishTicket(ctx context.Context, t domain.Ticket, report domain.DispatchReport)
}

// Directory resolves routing and labels for tickets
type Directory interface {
	RecipientsFor(regionKey string) []int64
	ApplianceLabel(key string, lang domain.Language) string
	RegionLabel(key string, lang domain.Language) string
}

// Submitter routes completed tickets to regional staff
type Submitter struct {
	directory Directory
	sink      NotificationSink
	publisher TicketPublisher
	logger    *zap.Logger

	newID func() string
	now   func() time.Time
}

// NewSubmitter creates a new submitter. publisher may be nil.
func NewSubmitter(directory Directory, sink NotificationSink, publisher TicketPublisher, logger *zap.Logger) *Submitter {
	return &Submitter{
		directory: directory,
		sink:      sink,
		publisher: publisher,
		logger:    logger,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Submit sends the ticket once to every recipient of its region.
// Failures are recorded per recipient and never abort the others.
func (s *Submitter) Submit(ctx context.Context, t domain.Ticket) domain.DispatchReport {
	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}

	recipients := s.directory.RecipientsFor(t.RegionKey)
	report := domain.DispatchReport{
		TicketID:   t.ID,
		RegionKey:  t.RegionKey,
		Deliveries: make([]domain.Delivery, len(recipients)),
	}

	text := FormatTicket(t, s.directory)

	var wg sync.WaitGroup
	for i, recipientID := range recipients {
		wg.Add(1)
		go func(i int, recipientID int64) {
			defer wg.Done()
			err := s.sink.Send(ctx, recipientID, text)
			report.Deliveries[i] = domain.Delivery{RecipientID: recipientID, Err: err}
			if err != nil {
				s.logger.Error("Failed to deliver ticket",
					zap.String("ticket_id", t.ID),
					zap.Int64("recipient_id", recipientID),
					zap.Error(err),
				)
			}
		}(i, recipientID)
	}
	wg.Wait()

	switch {
	case len(recipients) == 0:
		s.logger.Warn("No recipients mapped for region",
			zap.String("ticket_id", t.ID),
			zap.String("region", t.RegionKey),
		)
	case report.Unrouted():
		s.logger.Warn("Ticket reached no recipients",
			zap.String("ticket_id", t.ID),
			zap.String("region", t.RegionKey),
			zap.Int("failed", report.Failed()),
		)
	default:
		s.logger.Info("Ticket dispatched",
			zap.String("ticket_id", t.ID),
			zap.Int64("requester_id", t.RequesterID),
			zap.String("region", t.RegionKey),
			zap.Int("delivered", report.Delivered()),
			zap.Int("failed", report.Failed()),
		)
	}

	if s.publisher != nil {
		s.publisher.PublishTicket(ctx, t, report)
	}

	return report
}

// FormatTicket renders the staff-facing ticket text.
// Field order and line layout are relied on by staff tooling.
func FormatTicket(t domain.Ticket, directory Directory) string {
	handle := "—"
	if t.RequesterHandle != "" {
		handle = "@" + t.RequesterHandle
	}

	lines := []string{
		"📨 Новая заявка на сервис",
		fmt.Sprintf("👤 Пользователь: %s (%s, id=%d)", singleLine(t.RequesterDisplayName), handle, t.RequesterID),
		fmt.Sprintf("📦 Техника: %s", directory.ApplianceLabel(t.ApplianceKey, domain.LanguageRU)),
		fmt.Sprintf("📍 Регион: %s", directory.RegionLabel(t.RegionKey, domain.LanguageRU)),
		fmt.Sprintf("📝 Проблема: %s", singleLine(t.ProblemText)),
		fmt.Sprintf("📞 Телефон: %s", singleLine(t.PhoneRaw)),
		fmt.Sprintf("🏠 Адрес: %s", singleLine(t.AddressText)),
	}
	return strings.Join(lines, "\n")
}

// singleLine folds line breaks and runs of whitespace into single spaces
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
