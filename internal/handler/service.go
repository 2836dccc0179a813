package handler

import (
	"context"
	"strings"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
	"github.com/humoyunmirzo-code/tgbot/internal/engine"
	"github.com/humoyunmirzo-code/tgbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles the main menu and, during the service flow, the user's answers
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	ctx, cancel := requestContext()
	defer cancel()

	session, err := h.intake.Session(ctx, userID)
	if err != nil {
		return h.fail(c, h.language(ctx, userID, nil), "Failed to load session", err)
	}
	lang := h.language(ctx, userID, session)
	t := textsFor(lang)

	switch text {
	case t.MenuProducts:
		return c.Send(t.ProductsTitle, productsMarkup(h.catalog, lang))
	case t.MenuContacts:
		return c.Send(t.ContactsText, mainMenuMarkup(lang))
	case t.MenuAbout:
		return c.Send(t.AboutText, mainMenuMarkup(lang))
	case t.MenuService:
		return h.startService(ctx, c, lang)
	case t.MenuBack:
		if session != nil && session.State != domain.StateSubmitted {
			return h.advance(ctx, c, lang, engine.Back())
		}
		// a submitted request leaves the user on the main menu
		if session != nil {
			if err := h.intake.Reset(ctx, userID); err != nil {
				return h.fail(c, lang, "Failed to clear session", err)
			}
		}
		return c.Send(t.ChooseLanguage, languageMarkup())
	}

	if session != nil {
		in := engine.Text(text)
		in.Requester = requesterFrom(c.Sender())
		return h.advance(ctx, c, lang, in)
	}

	// Unknown input outside the flow
	return c.Send(t.ChooseLanguage, languageMarkup())
}

// startService shows the warranty terms and enters the flow
func (h *Handler) startService(ctx context.Context, c tele.Context, lang domain.Language) error {
	userID := c.Sender().ID

	reply, err := h.intake.Start(ctx, userID, lang)
	if err != nil {
		return h.fail(c, lang, "Failed to start service flow", err)
	}

	h.logger.Info("Service flow started", zap.Int64("user_id", userID))
	return h.respond(c, lang, reply.Output)
}

// advance feeds one input to the intake flow and answers with its outcome
func (h *Handler) advance(ctx context.Context, c tele.Context, lang domain.Language, in engine.Input) error {
	userID := c.Sender().ID

	reply, err := h.intake.Handle(ctx, service.Event{
		UserID:   userID,
		Language: lang,
		Input:    in,
	})
	if err != nil {
		return h.fail(c, lang, "Failed to handle service flow input", err)
	}

	if reply.Report != nil {
		h.logger.Info("Service request submitted",
			zap.Int64("user_id", userID),
			zap.String("ticket_id", reply.Report.TicketID),
			zap.Int("delivered", reply.Report.Delivered()),
		)
	}

	if reply.Session.Language.Valid() {
		lang = reply.Session.Language
	}
	return h.respond(c, lang, reply.Output)
}

// respond renders out; the agreement prompt carries the warranty image
func (h *Handler) respond(c tele.Context, lang domain.Language, out engine.Output) error {
	text, markup := render(out, lang, h.catalog)

	if out.Kind == engine.OutputPrompt && out.Step == domain.StateAwaitingAgreement {
		return h.sendPhoto(c, "warranty_"+string(lang)+".jpg", text, markup)
	}
	return c.Send(text, markup)
}
