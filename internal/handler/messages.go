package handler

import "github.com/humoyunmirzo-code/tgbot/internal/domain"

const (
	langButtonRU = "Русский"
	langButtonUZ = "Oʻzbekcha"

	chooseLanguageBoth = "Выберите язык / Tilni tanlang:"

	// menuPlaceholder is an invisible separator; Telegram rejects empty text
	menuPlaceholder = "\u2063"

	contactsText = "Телефон: +998 (71) 230-70-00 Email: support@seventech.uz"
)

// texts holds the user-facing strings of one language
type texts struct {
	ChooseLanguage  string
	BrandCaption    string
	MenuProducts    string
	MenuService     string
	MenuContacts    string
	MenuAbout       string
	MenuBack        string
	AboutText       string
	ContactsText    string
	ProductsTitle   string
	ProductsSent    string
	ProductNotFound string
	WarrantyCaption string
	Agree           string
	AskAppliance    string
	AskRegion       string
	AskProblem      string
	AskPhone        string
	AskAddress      string
	InvalidPhone    string
	TicketSubmitted string
	TryLater        string
}

var messages = map[domain.Language]texts{
	domain.LanguageRU: {
		ChooseLanguage:  "Выберите язык:",
		BrandCaption:    "7tech — бытовая техника нового уровня. Надёжность, качество и стиль для вашего дома. Мы заботимся о каждом клиенте. 😊",
		MenuProducts:    "Продукции",
		MenuService:     "Сервис",
		MenuContacts:    "Контакты",
		MenuAbout:       "О нас",
		MenuBack:        "⬅️ Назад",
		AboutText:       "Мы 7tech. Продаём самые лучшие и качественные бытовые техники ✨",
		ContactsText:    contactsText,
		ProductsTitle:   "Выберите категорию продукции:",
		ProductsSent:    "Откройте ссылку на выбранную категорию:",
		ProductNotFound: "Категория не найдена",
		WarrantyCaption: "Гарантийные условия. Пожалуйста, ознакомьтесь и подтвердите.",
		Agree:           "Я соглашаюсь",
		AskAppliance:    "С какой техникой вам нужен сервис?",
		AskRegion:       "Выберите ваш регион:",
		AskProblem:      "Опишите вашу проблему:",
		AskPhone:        "Укажите ваш номер телефона (введите текстом):",
		AskAddress:      "Уточните ваш точный адрес:",
		InvalidPhone:    "Похоже, номер некорректен. Введите, пожалуйста, снова (пример: +998901234567):",
		TicketSubmitted: "Спасибо! Ваша заявка передана сотрудникам, она будет рассмотрена в течение 5 рабочих дней. С вами свяжутся. 📩",
		TryLater:        "Произошла ошибка. Попробуйте позже.",
	},
	domain.LanguageUZ: {
		ChooseLanguage:  "Tilni tanlang:",
		BrandCaption:    "7tech — zamonaviy maishiy texnika. Ishonchlilik, sifat va uslub sizning uyingiz uchun. Har bir mijoz biz uchun muhim. 😊",
		MenuProducts:    "Mahsulotlar",
		MenuService:     "Servis",
		MenuContacts:    "Aloqa",
		MenuAbout:       "Biz haqimizda",
		MenuBack:        "⬅️ Ortga",
		AboutText:       "Biz 7tech. Eng zoʻr va sifatli maishiy texnikalarni sotamiz ✨",
		ContactsText:    "Telefon: +998 (71) 230-70-00 Email: support@seventech.uz",
		ProductsTitle:   "Mahsulot turini tanlang:",
		ProductsSent:    "Tanlangan bo‘lim uchun havola:",
		ProductNotFound: "Bo‘lim topilmadi",
		WarrantyCaption: "Kafolat shartlari. Iltimos, tanishib chiqing va tasdiqlang.",
		Agree:           "Roziman",
		AskAppliance:    "Qaysi texnika bo‘yicha servis kerak?",
		AskRegion:       "Hududingizni tanlang:",
		AskProblem:      "Muammoni qisqacha yozing:",
		AskPhone:        "Telefon raqamingizni kiriting (matn bilan):",
		AskAddress:      "Aniq manzilingizni yozing:",
		InvalidPhone:    "Raqam noto‘g‘ri ko‘rinadi. Iltimos, qayta kiriting (namuna: +998901234567):",
		TicketSubmitted: "Rahmat! So‘rovingiz xodimlarga yuborildi. 5 ish kuni ichida ko‘rib chiqiladi. Siz bilan bog‘lanishadi. 📩",
		TryLater:        "Xatolik yuz berdi. Keyinroq urinib ko‘ring.",
	},
}

// textsFor returns the strings of lang, falling back to the default language
func textsFor(lang domain.Language) texts {
	if t, ok := messages[lang]; ok {
		return t
	}
	return messages[domain.DefaultLanguage]
}

// languageFromButton maps a language keyboard label to its language
func languageFromButton(text string) (domain.Language, bool) {
	switch text {
	case langButtonRU:
		return domain.LanguageRU, true
	case langButtonUZ:
		return domain.LanguageUZ, true
	}
	return "", false
}
