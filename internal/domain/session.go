package domain

import "time"

// State is a step of the service intake conversation
type State string

const (
	StateIdle              State = "idle"
	StateAwaitingAgreement State = "awaiting_agreement"
	StateAwaitingAppliance State = "awaiting_appliance"
	StateAwaitingRegion    State = "awaiting_region"
	StateAwaitingProblem   State = "awaiting_problem"
	StateAwaitingPhone     State = "awaiting_phone"
	StateAwaitingAddress   State = "awaiting_address"
	StateSubmitted         State = "submitted"
)

// Fields holds answers collected so far. Empty string means not collected.
// Appliance and region are canonical catalog keys, never display labels.
type Fields struct {
	ApplianceKey string `json:"appliance_key,omitempty"`
	RegionKey    string `json:"region_key,omitempty"`
	ProblemText  string `json:"problem_text,omitempty"`
	PhoneRaw     string `json:"phone_raw,omitempty"`
	AddressText  string `json:"address_text,omitempty"`
}

// Session is the in-flight intake conversation of one user
type Session struct {
	UserID    int64     `json:"user_id"`
	Language  Language  `json:"language"`
	State     State     `json:"state"`
	Fields    Fields    `json:"fields"`
	Submitted bool      `json:"submitted"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns an idle session for the user
func NewSession(userID int64, lang Language) Session {
	if !lang.Valid() {
		lang = DefaultLanguage
	}
	return Session{
		UserID:   userID,
		Language: lang,
		State:    StateIdle,
	}
}

// InFlow reports whether the session is inside the intake flow
func (s Session) InFlow() bool {
	return s.State != StateIdle
}
