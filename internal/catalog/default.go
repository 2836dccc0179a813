package catalog

import "github.com/humoyunmirzo-code/tgbot/internal/domain"

const marketURL = "https://seventech.uz/market?category="

// defaultStaffChat receives tickets for every region unless a catalog file overrides it
const defaultStaffChat int64 = 888936051

var defaultAppliances = []Appliance{
	{Key: "air_conditioners", Label: "Кондиционеры", ProductURL: marketURL + "kondicionery"},
	{Key: "refrigerators", Label: "Холодильники", ProductURL: marketURL + "xolodilniki"},
	{Key: "tvs", Label: "Телевизоры", ProductURL: marketURL + "televizory"},
	{Key: "water_dispensers", Label: "Диспенсеры для воды", ProductURL: marketURL + "televizory"},
	{Key: "monitors", Label: "Мониторы", ProductURL: marketURL + "monitory"},
	{Key: "vacuum_cleaners", Label: "Пылесосы", ProductURL: marketURL + "pylesosy"},
	{Key: "washing_machines", Label: "Стиральные машины", ProductURL: marketURL + "ctiralnye-masiny"},
	{Key: "hobs", Label: "Варочные панели", ProductURL: marketURL + "varocnye-paneli"},
	{Key: "ovens", Label: "Духовые шкафы", ProductURL: marketURL + "duxovye-skafy"},
	{Key: "dryers", Label: "Сушильные машины", ProductURL: marketURL + "susilnye-masiny"},
	{Key: "hoods", Label: "Вытяжки", ProductURL: marketURL + "vytiazki"},
	{Key: "dishwashers", Label: "Посудомоечные машины", ProductURL: marketURL + "posudomoecnye-masiny"},
	{Key: "microwaves", Label: "Микроволновые печи", ProductURL: marketURL + "mikrovolnovye-peci"},
}

var defaultRegions = []Region{
	{Key: "tashkent_city", Label: "Ташкент город", StaffRecipients: []int64{defaultStaffChat, 5579006763}},
	{Key: "tashkent", Label: "Ташкент", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "andijan", Label: "Андижан", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "namangan", Label: "Наманган", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "fergana", Label: "Фергана", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "syrdarya", Label: "Сырдарья", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "jizzakh", Label: "Джиззах", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "samarkand", Label: "Самарканд", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "bukhara", Label: "Бухара", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "kashkadarya", Label: "Кашкадарья", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "surkhandarya", Label: "Сурхандарья", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "navoi", Label: "Наваи", StaffRecipients: []int64{defaultStaffChat}},
	{Key: "khorezm", Label: "Хорезм", StaffRecipients: []int64{defaultStaffChat}},
}

var defaultTranslations = map[domain.Language]map[string]string{
	domain.LanguageUZ: {
		// Appliances
		"Кондиционеры":         "Konditsionerlar",
		"Холодильники":         "Muzlatkichlar",
		"Телевизоры":           "Televizorlar",
		"Диспенсеры для воды":  "Suv dispenserlari",
		"Мониторы":             "Monitorlar",
		"Пылесосы":             "Changyutgichlar",
		"Стиральные машины":    "Kir yuvish mashinalari",
		"Варочные панели":      "Pishirish panellari",
		"Духовые шкафы":        "Duxovkalar",
		"Сушильные машины":     "Quritish mashinalari",
		"Вытяжки":              "Moy tutgichlar",
		"Посудомоечные машины": "Idish yuvish mashinalari",
		"Микроволновые печи":   "Mikroto‘lqinli pechlar",
		// Regions
		"Ташкент город":       "Toshkent shahri",
		"Ташкентская область": "Toshkent viloyati",
		"Андижан":             "Andijon",
		"Наманган":            "Namangan",
		"Фергана":             "Farg‘ona",
		"Сырдарья":            "Sirdaryo",
		"Джиззах":             "Jizzax",
		"Самарканд":           "Samarqand",
		"Бухара":              "Buxoro",
		"Кашкадарья":          "Qashqadaryo",
		"Сурхандарья":         "Surxondaryo",
		"Наваи":               "Navoiy",
		"Хорезм":              "Xorazm",
	},
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(defaultAppliances, defaultRegions, defaultTranslations)
	if err != nil {
		// built-in data is covered by tests
		panic(err)
	}
	return c
}
