package domain

// Button is one pressable affordance attached to an outbound message.
// Data is what comes back as a Selection payload when pressed.
type Button struct {
	Label string
	Data  string
}

// Message is one outbound message. When ImageURL is set the transport should
// send the image with Text as its caption.
type Message struct {
	Text     string
	ImageURL string

	// Buttons are rows of buttons. Row layout is a hint; transports may
	// reflow it.
	Buttons [][]Button
}

// Reply is everything a handler produces for the transport in one turn.
type Reply struct {
	Messages []Message

	// Ack is a short notice for transports that acknowledge selections
	// (e.g. a callback-query toast). Empty means no acknowledgment.
	Ack string

	// ReplacePrior asks the transport to delete its previous message in
	// this conversation after sending, so stale keyboards don't linger.
	ReplacePrior bool
}

// Say builds a single-message text reply.
func Say(text string, buttons ...[]Button) *Reply {
	return &Reply{Messages: []Message{{Text: text, Buttons: buttons}}}
}
