package engine

import "github.com/humoyunmirzo-code/tgbot/internal/domain"

// InputKind distinguishes user signals
type InputKind int

const (
	// InputText is a free text message or a reply keyboard button
	InputText InputKind = iota
	// InputBack is the "back" button
	InputBack
	// InputAgree is the warranty agreement signal
	InputAgree
	// InputStart (re)enters the flow
	InputStart
)

// Input is one user event fed to the engine
type Input struct {
	Kind      InputKind
	Text      string
	Requester domain.Requester
}

// Text builds a text input
func Text(s string) Input {
	return Input{Kind: InputText, Text: s}
}

// Back builds a back input
func Back() Input {
	return Input{Kind: InputBack}
}

// Agree builds an agreement input
func Agree() Input {
	return Input{Kind: InputAgree}
}

// Start builds a flow entry input
func Start() Input {
	return Input{Kind: InputStart}
}

// OutputKind is the kind of event the engine emits
type OutputKind int

const (
	// OutputPrompt asks the question of Step
	OutputPrompt OutputKind = iota
	// OutputValidationError rejects the input and repeats the question of Step
	OutputValidationError
	// OutputTicketReady carries the completed ticket
	OutputTicketReady
	// OutputExitedFlow means the session was cleared
	OutputExitedFlow
	// OutputAlreadySubmitted repeats the completion acknowledgment
	OutputAlreadySubmitted
)

func (k OutputKind) String() string {
	switch k {
	case OutputPrompt:
		return "prompt"
	case OutputValidationError:
		return "validation_error"
	case OutputTicketReady:
		return "ticket_ready"
	case OutputExitedFlow:
		return "exited_flow"
	case OutputAlreadySubmitted:
		return "already_submitted"
	default:
		return "unknown"
	}
}

// Expect is the input affordance a step needs from the presentation layer
type Expect int

const (
	ExpectNothing Expect = iota
	ExpectAgreement
	ExpectChoice
	ExpectText
)

// Output is the engine's reaction to one input
type Output struct {
	Kind   OutputKind
	Step   domain.State
	Expect Expect
	Ticket *domain.Ticket
}

// ExpectFor returns the affordance of a step
func ExpectFor(state domain.State) Expect {
	switch state {
	case domain.StateAwaitingAgreement:
		return ExpectAgreement
	case domain.StateAwaitingAppliance, domain.StateAwaitingRegion:
		return ExpectChoice
	case domain.StateAwaitingProblem, domain.StateAwaitingPhone, domain.StateAwaitingAddress:
		return ExpectText
	default:
		return ExpectNothing
	}
}

func prompt(state domain.State) Output {
	return Output{Kind: OutputPrompt, Step: state, Expect: ExpectFor(state)}
}

func invalid(state domain.State) Output {
	return Output{Kind: OutputValidationError, Step: state, Expect: ExpectFor(state)}
}
