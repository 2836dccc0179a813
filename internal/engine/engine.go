// Package engine implements the service intake state machine.
//
// Transition is a pure function of the current session and one input:
// it never performs I/O, reads the clock or generates ids. Callers are
// responsible for persisting the returned session and acting on the output.
package engine

import (
	"strings"
	"unicode"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
)

// Steps is the ordered list of states that collect input.
// Back navigation moves one index down. Backing out of the agreement or
// appliance step leaves the flow.
var Steps = []domain.State{
	domain.StateAwaitingAgreement,
	domain.StateAwaitingAppliance,
	domain.StateAwaitingRegion,
	domain.StateAwaitingProblem,
	domain.StateAwaitingPhone,
	domain.StateAwaitingAddress,
}

// Resolver maps choice button texts to canonical keys
type Resolver interface {
	ResolveAppliance(input string, lang domain.Language) (string, bool)
	ResolveRegion(input string, lang domain.Language) (string, bool)
}

// Engine drives sessions through the intake steps
type Engine struct {
	resolver Resolver
}

// New creates an engine that validates choices against resolver
func New(resolver Resolver) *Engine {
	return &Engine{resolver: resolver}
}

// Transition computes the next session and the output event for one input.
// The passed session is not modified.
func (e *Engine) Transition(s domain.Session, in Input) (domain.Session, Output) {
	if in.Kind == InputStart {
		next := domain.NewSession(s.UserID, s.Language)
		next.State = domain.StateAwaitingAgreement
		return next, prompt(next.State)
	}

	switch s.State {
	case domain.StateIdle:
		return s, Output{Kind: OutputExitedFlow}
	case domain.StateSubmitted:
		if in.Kind == InputBack {
			return domain.NewSession(s.UserID, s.Language), Output{Kind: OutputExitedFlow}
		}
		return s, Output{Kind: OutputAlreadySubmitted, Step: domain.StateSubmitted}
	}

	idx := stepIndex(s.State)
	if idx < 0 {
		// unknown state, e.g. a session written by a newer build
		return domain.NewSession(s.UserID, s.Language), Output{Kind: OutputExitedFlow}
	}

	switch in.Kind {
	case InputBack:
		return back(s, idx)
	case InputAgree:
		if s.State != domain.StateAwaitingAgreement {
			return s, prompt(s.State)
		}
		s.State = domain.StateAwaitingAppliance
		return s, prompt(s.State)
	case InputText:
		return e.answer(s, in)
	default:
		return s, prompt(s.State)
	}
}

func back(s domain.Session, idx int) (domain.Session, Output) {
	// agreement and appliance both sit at the edge of the flow
	if idx <= 1 {
		return domain.NewSession(s.UserID, s.Language), Output{Kind: OutputExitedFlow}
	}
	s.State = Steps[idx-1]
	return s, prompt(s.State)
}

func (e *Engine) answer(s domain.Session, in Input) (domain.Session, Output) {
	text := strings.TrimSpace(in.Text)

	switch s.State {
	case domain.StateAwaitingAgreement:
		return s, invalid(s.State)

	case domain.StateAwaitingAppliance:
		key, ok := e.resolver.ResolveAppliance(text, s.Language)
		if !ok {
			return s, invalid(s.State)
		}
		s.Fields.ApplianceKey = key

	case domain.StateAwaitingRegion:
		key, ok := e.resolver.ResolveRegion(text, s.Language)
		if !ok {
			return s, invalid(s.State)
		}
		s.Fields.RegionKey = key

	case domain.StateAwaitingProblem:
		if text == "" {
			return s, invalid(s.State)
		}
		s.Fields.ProblemText = text

	case domain.StateAwaitingPhone:
		if !ValidPhone(text) {
			return s, invalid(s.State)
		}
		s.Fields.PhoneRaw = text

	case domain.StateAwaitingAddress:
		if text == "" {
			return s, invalid(s.State)
		}
		s.Fields.AddressText = text
		s.State = domain.StateSubmitted
		s.Submitted = true
		ticket := newTicket(s, in.Requester)
		return s, Output{Kind: OutputTicketReady, Step: domain.StateSubmitted, Ticket: &ticket}
	}

	s.State = Steps[stepIndex(s.State)+1]
	return s, prompt(s.State)
}

func newTicket(s domain.Session, r domain.Requester) domain.Ticket {
	return domain.Ticket{
		RequesterID:          r.ID,
		RequesterDisplayName: r.DisplayName,
		RequesterHandle:      r.Handle,
		ApplianceKey:         s.Fields.ApplianceKey,
		RegionKey:            s.Fields.RegionKey,
		ProblemText:          s.Fields.ProblemText,
		PhoneRaw:             s.Fields.PhoneRaw,
		AddressText:          s.Fields.AddressText,
		Language:             s.Language,
	}
}

func stepIndex(state domain.State) int {
	for i, st := range Steps {
		if st == state {
			return i
		}
	}
	return -1
}

// MinPhoneDigits is the minimum number of digits a phone number must contain
const MinPhoneDigits = 9

// ValidPhone reports whether s contains at least MinPhoneDigits decimal digits,
// in any script. Separators such as spaces, "+", "-" and parentheses are ignored.
func ValidPhone(s string) bool {
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= MinPhoneDigits
}
