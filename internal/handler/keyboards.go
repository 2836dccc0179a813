package handler

import (
	"github.com/humoyunmirzo-code/tgbot/internal/catalog"
	"github.com/humoyunmirzo-code/tgbot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

const (
	uniqueAgree        = "agree"
	uniqueProductsBack = "prod_back"
	productPrefix      = "prod:"
)

// Inline buttons matched by unique; their labels are set per language
var (
	btnAgree        = tele.Btn{Unique: uniqueAgree}
	btnProductsBack = tele.Btn{Unique: uniqueProductsBack}
	btnLangRU       = tele.Btn{Text: langButtonRU}
	btnLangUZ       = tele.Btn{Text: langButtonUZ}
)

// languageMarkup returns the language selection keyboard
func languageMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(btnLangRU, btnLangUZ))
	return menu
}

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup(lang domain.Language) *tele.ReplyMarkup {
	t := textsFor(lang)
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(t.MenuProducts), menu.Text(t.MenuService)),
		menu.Row(menu.Text(t.MenuContacts), menu.Text(t.MenuAbout)),
		menu.Row(menu.Text(t.MenuBack)),
	)
	return menu
}

// choiceMarkup lays labels out two per row followed by the back button
func choiceMarkup(labels []string, lang domain.Language) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	btns := make([]tele.Btn, 0, len(labels))
	for _, label := range labels {
		btns = append(btns, menu.Text(label))
	}
	rows := menu.Split(2, btns)
	rows = append(rows, menu.Row(menu.Text(textsFor(lang).MenuBack)))
	menu.Reply(rows...)
	return menu
}

// backOnlyMarkup is shown while free text is expected
func backOnlyMarkup(lang domain.Language) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(textsFor(lang).MenuBack)))
	return menu
}

// agreeMarkup returns the inline warranty agreement button
func agreeMarkup(lang domain.Language) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data(textsFor(lang).Agree, uniqueAgree)))
	return markup
}

// productsMarkup lists product categories as inline buttons
func productsMarkup(cat *catalog.Catalog, lang domain.Language) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	appliances := cat.Appliances()
	btns := make([]tele.Btn, 0, len(appliances))
	for _, a := range appliances {
		btns = append(btns, markup.Data(cat.Translate(a.Label, lang), productPrefix+a.Key))
	}
	rows := markup.Split(2, btns)
	rows = append(rows, markup.Row(markup.Data(textsFor(lang).MenuBack, uniqueProductsBack)))
	markup.Inline(rows...)
	return markup
}

func applianceLabels(cat *catalog.Catalog, lang domain.Language) []string {
	appliances := cat.Appliances()
	labels := make([]string, 0, len(appliances))
	for _, a := range appliances {
		labels = append(labels, cat.Translate(a.Label, lang))
	}
	return labels
}

func regionLabels(cat *catalog.Catalog, lang domain.Language) []string {
	regions := cat.Regions()
	labels := make([]string, 0, len(regions))
	for _, r := range regions {
		labels = append(labels, cat.Translate(r.Label, lang))
	}
	return labels
}
