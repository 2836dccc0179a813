package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
	"github.com/humoyunmirzo-code/tgbot/internal/testutil"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestParseBrokers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "kafka:9092", expected: []string{"kafka:9092"}},
		{name: "list with spaces", input: " a:9092, b:9092 ,,", expected: []string{"a:9092", "b:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseBrokers(tt.input))
		})
	}
}

func TestNewProducer_Disabled(t *testing.T) {
	tests := []struct {
		name    string
		brokers []string
		topic   string
	}{
		{name: "no brokers", topic: "service-tickets"},
		{name: "no topic", brokers: []string{"kafka:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProducer(tt.brokers, tt.topic, testutil.NewTestLogger())

			assert.False(t, p.Enabled())
			p.PublishTicket(context.Background(), testutil.NewTestTicket(1, "tashkent"), domain.DispatchReport{})
			assert.NoError(t, p.Close())
		})
	}
}

func TestProducer_PublishTicket(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, topic: "service-tickets", logger: testutil.NewTestLogger()}

	ticket := testutil.NewTestTicket(42, "tashkent_city")
	ticket.ID = "abc"
	report := domain.DispatchReport{
		TicketID:  "abc",
		RegionKey: "tashkent_city",
		Deliveries: []domain.Delivery{
			{RecipientID: 888936051},
			{RecipientID: 5579006763, Err: errors.New("blocked")},
		},
	}

	p.PublishTicket(context.Background(), ticket, report)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "42", string(w.msgs[0].Key))

	var event TicketEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
	assert.Equal(t, EventTicketSubmitted, event.Event)
	assert.Equal(t, "abc", event.Ticket.ID)
	assert.Equal(t, []int64{888936051, 5579006763}, event.Recipients)
	assert.Equal(t, 1, event.Delivered)
	assert.Equal(t, 1, event.Failed)
}

func TestProducer_WriteErrorIsSwallowed(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &Producer{writer: w, topic: "service-tickets", logger: testutil.NewTestLogger()}

	assert.NotPanics(t, func() {
		p.PublishTicket(context.Background(), testutil.NewTestTicket(1, "tashkent"), domain.DispatchReport{})
	})

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
