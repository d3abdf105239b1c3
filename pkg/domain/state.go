package domain

// State identifies the conversation's position in the dialogue state machine.
type State string

const (
	// StateStart is the initial state. It is also re-entrant: the /start
	// command forces it regardless of any persisted value.
	StateStart State = "START"

	// StateMenu means the catalog menu was shown and a product pick is expected.
	StateMenu State = "MENU"

	// StateDescription means a product description with a quantity picker is shown.
	StateDescription State = "DESCRIPTION"

	// StateCart means the cart view is shown.
	StateCart State = "CART"

	// StateAwaitingEmail means the user was asked for an email address.
	StateAwaitingEmail State = "AWAITING_EMAIL"

	// StateContacting means the order was handed off to a human. The
	// conversation loops here until the user cancels or changes email.
	StateContacting State = "CONTACTING"
)

// Valid reports whether s is one of the enumerated states.
func (s State) Valid() bool {
	switch s {
	case StateStart, StateMenu, StateDescription, StateCart, StateAwaitingEmail, StateContacting:
		return true
	}
	return false
}

// ParseState converts a persisted state name back into a State.
// Unknown values yield a *StateError so callers can fall back explicitly.
func ParseState(raw string) (State, error) {
	s := State(raw)
	if !s.Valid() {
		return "", &StateError{Value: raw}
	}
	return s, nil
}

// CartKey derives the commerce-platform cart identifier for a conversation.
// Carts are keyed 1:1 by the conversation id, so the derivation is the
// identity function. Kept as a named function so the coupling stays explicit
// and in one place.
func CartKey(conversationID string) string {
	return conversationID
}
