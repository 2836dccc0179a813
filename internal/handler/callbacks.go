package handler

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/humoyunmirzo-code/tgbot/internal/engine"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from editing a callback's message.
// A "message is not modified" error means another tap already handled it: the callback is
// acknowledged and nil is returned. Any other error is acknowledged and returned.
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		h.acknowledge(c)
		return nil
	}

	h.logger.Warn("Failed to edit message",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	h.acknowledge(c)
	return err
}

func (h *Handler) acknowledge(c tele.Context) {
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
}

// handleCallback handles callback queries not matched by unique
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch callback.Unique {
	case uniqueAgree:
		return h.handleAgree(c)
	case uniqueProductsBack:
		return h.handleProductsBack(c)
	}

	if callback.Unique == "" {
		switch data {
		case uniqueAgree:
			return h.handleAgree(c)
		case uniqueProductsBack:
			return h.handleProductsBack(c)
		}
	}

	if strings.HasPrefix(data, productPrefix) {
		return h.handleProduct(c, strings.TrimPrefix(data, productPrefix))
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleAgree accepts the warranty terms and asks for the appliance
func (h *Handler) handleAgree(c tele.Context) error {
	userID := c.Sender().ID

	// Drop the button so a second tap cannot agree twice
	if msg := c.Message(); msg != nil && c.Bot() != nil {
		if _, err := c.Bot().EditReplyMarkup(msg, nil); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
		} else {
			h.acknowledge(c)
		}
	} else {
		h.acknowledge(c)
	}

	ctx, cancel := requestContext()
	defer cancel()

	session, err := h.intake.Session(ctx, userID)
	if err != nil {
		return h.fail(c, h.language(ctx, userID, nil), "Failed to load session", err)
	}
	return h.advance(ctx, c, h.language(ctx, userID, session), engine.Agree())
}

// handleProduct sends the link of the chosen product category
func (h *Handler) handleProduct(c tele.Context, key string) error {
	ctx, cancel := requestContext()
	defer cancel()

	lang := h.language(ctx, c.Sender().ID, nil)
	t := textsFor(lang)

	appliance, ok := h.catalog.Appliance(key)
	if !ok || appliance.ProductURL == "" {
		return c.Respond(&tele.CallbackResponse{Text: t.ProductNotFound, ShowAlert: true})
	}

	h.acknowledge(c)
	return c.Send(fmt.Sprintf("%s %s", t.ProductsSent, appliance.ProductURL), mainMenuMarkup(lang))
}

// handleProductsBack removes the product list and shows the main menu again
func (h *Handler) handleProductsBack(c tele.Context) error {
	h.acknowledge(c)

	ctx, cancel := requestContext()
	defer cancel()

	lang := h.language(ctx, c.Sender().ID, nil)

	if c.Message() != nil {
		if err := c.Delete(); err != nil {
			h.logger.Debug("Failed to delete products message", zap.Error(err))
		}
	}
	return c.Send(menuPlaceholder, mainMenuMarkup(lang))
}
