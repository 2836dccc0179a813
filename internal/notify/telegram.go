package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Sender is the part of *tele.Bot used to reach staff chats
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelegramSink delivers ticket text to staff chats through the bot
type TelegramSink struct {
	sender Sender
	logger *zap.Logger
}

// NewTelegramSink creates a new telegram sink
func NewTelegramSink(sender Sender, logger *zap.Logger) *TelegramSink {
	return &TelegramSink{
		sender: sender,
		logger: logger,
	}
}

// Send sends text to the chat recipientID
func (s *TelegramSink) Send(ctx context.Context, recipientID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.sender.Send(tele.ChatID(recipientID), text, tele.NoPreview)
	if err != nil {
		return fmt.Errorf("failed to send to chat %d: %w", recipientID, err)
	}

	if msg != nil {
		s.logger.Debug("Ticket delivered",
			zap.Int64("recipient_id", recipientID),
			zap.Int("message_id", msg.ID),
		)
	}
	return nil
}
