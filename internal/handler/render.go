package handler

import (
	"github.com/humoyunmirzo-code/tgbot/internal/catalog"
	"github.com/humoyunmirzo-code/tgbot/internal/domain"
	"github.com/humoyunmirzo-code/tgbot/internal/engine"

	tele "gopkg.in/telebot.v3"
)

// render turns an engine output into the message shown to the user
func render(out engine.Output, lang domain.Language, cat *catalog.Catalog) (string, *tele.ReplyMarkup) {
	t := textsFor(lang)

	switch out.Kind {
	case engine.OutputTicketReady, engine.OutputAlreadySubmitted:
		return t.TicketSubmitted, mainMenuMarkup(lang)
	case engine.OutputExitedFlow:
		return menuPlaceholder, mainMenuMarkup(lang)
	}

	switch out.Step {
	case domain.StateAwaitingAgreement:
		return t.WarrantyCaption, agreeMarkup(lang)
	case domain.StateAwaitingAppliance:
		return t.AskAppliance, choiceMarkup(applianceLabels(cat, lang), lang)
	case domain.StateAwaitingRegion:
		return t.AskRegion, choiceMarkup(regionLabels(cat, lang), lang)
	case domain.StateAwaitingProblem:
		return t.AskProblem, backOnlyMarkup(lang)
	case domain.StateAwaitingPhone:
		if out.Kind == engine.OutputValidationError {
			return t.InvalidPhone, backOnlyMarkup(lang)
		}
		return t.AskPhone, backOnlyMarkup(lang)
	case domain.StateAwaitingAddress:
		return t.AskAddress, backOnlyMarkup(lang)
	}

	return menuPlaceholder, mainMenuMarkup(lang)
}
