package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventTicketSubmitted is the event name of a dispatched ticket
const EventTicketSubmitted = "ticket.submitted"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TicketEvent is the JSON body written to the ticket topic
type TicketEvent struct {
	Event      string        `json:"event"`
	Ticket     domain.Ticket `json:"ticket"`
	Recipients []int64       `json:"recipients"`
	Delivered  int           `json:"delivered"`
	Failed     int           `json:"failed"`
}

// Producer mirrors submitted tickets to a Kafka topic, best effort.
// With no brokers or no topic every method is a no-op.
type Producer struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewProducer creates a new producer
func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{logger: logger}
	}
	return &Producer{
		topic:  topic,
		logger: logger,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Enabled reports whether events are actually written
func (p *Producer) Enabled() bool {
	return p.writer != nil
}

// PublishTicket writes a ticket.submitted event keyed by requester.
// Errors are logged, never returned.
func (p *Producer) PublishTicket(ctx context.Context, t domain.Ticket, report domain.DispatchReport) {
	if p.writer == nil {
		return
	}

	recipients := make([]int64, 0, len(report.Deliveries))
	for _, d := range report.Deliveries {
		recipients = append(recipients, d.RecipientID)
	}

	body, err := json.Marshal(TicketEvent{
		Event:      EventTicketSubmitted,
		Ticket:     t,
		Recipients: recipients,
		Delivered:  report.Delivered(),
		Failed:     report.Failed(),
	})
	if err != nil {
		p.logger.Error("Failed to marshal ticket event", zap.String("ticket_id", t.ID), zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(t.RequesterID, 10)),
		Value: body,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("Failed to publish ticket event",
			zap.String("ticket_id", t.ID),
			zap.String("topic", p.topic),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("Ticket event published", zap.String("ticket_id", t.ID), zap.String("topic", p.topic))
}

// Close closes the writer
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// ParseBrokers splits "host1:9092,host2:9092" into addresses
func ParseBrokers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
