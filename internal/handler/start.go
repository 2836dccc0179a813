package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.intake.Reset(ctx, userID); err != nil {
		return h.fail(c, h.language(ctx, userID, nil), "Failed to reset session", err)
	}

	return c.Send(chooseLanguageBoth, languageMarkup())
}

// handleLanguage stores the chosen language and shows the main menu
func (h *Handler) handleLanguage(c tele.Context) error {
	userID := c.Sender().ID

	lang, ok := languageFromButton(c.Text())
	if !ok {
		return h.handleText(c)
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.userService.SetLanguage(ctx, userID, lang); err != nil {
		return h.fail(c, lang, "Failed to save language", err)
	}
	// the session language is fixed, so a switch restarts the flow
	if err := h.intake.Reset(ctx, userID); err != nil {
		return h.fail(c, lang, "Failed to reset session", err)
	}

	h.logger.Info("Language selected",
		zap.Int64("user_id", userID),
		zap.String("language", string(lang)),
	)

	if err := h.sendPhoto(c, "brand_"+string(lang)+".jpg", textsFor(lang).BrandCaption, nil); err != nil {
		return err
	}
	return c.Send(menuPlaceholder, mainMenuMarkup(lang))
}
