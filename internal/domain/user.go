package domain

import "time"

// Language is a supported interface language
type Language string

const (
	LanguageRU Language = "ru"
	LanguageUZ Language = "uz"
)

// DefaultLanguage is used until the user picks one
const DefaultLanguage = LanguageRU

// Languages returns supported languages in menu order
func Languages() []Language {
	return []Language{LanguageRU, LanguageUZ}
}

// Valid reports whether l is a supported language
func (l Language) Valid() bool {
	return l == LanguageRU || l == LanguageUZ
}

// User represents a bot user with a remembered language
type User struct {
	UserID    int64
	Language  Language
	CreatedAt time.Time
}

// Requester identifies the person a ticket is filed for
type Requester struct {
	ID          int64
	DisplayName string
	Handle      string // without "@", empty if the user has none
}
