package domain

// Payload is the normalized content of an inbound transport event.
// It is a closed variant: either Text (a typed message) or Selection
// (a button/callback activation). Handlers type-switch over it.
type Payload interface {
	payload()
	// Value returns the raw string carried by the variant.
	Value() string
}

// Text is a message the user typed.
type Text string

// Selection is the data attached to a button the user pressed.
type Selection string

func (Text) payload()      {}
func (Selection) payload() {}

// Value returns the typed message text.
func (t Text) Value() string { return string(t) }

// Value returns the callback data.
func (s Selection) Value() string { return string(s) }

// Event is one normalized inbound transport event.
type Event struct {
	// ConversationID is the stable id derived from the transport's chat
	// identifier (e.g. "tg-123456").
	ConversationID string

	Payload Payload
}
