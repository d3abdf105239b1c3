/*
Package shopfront is a conversational storefront: a per-conversation dialogue
that lets a user browse a catalog, build a cart, and hand off to a human for
checkout, backed by a commerce platform and a persistent session store.

# Architecture

The conversation engine is a six-state machine (START, MENU, DESCRIPTION,
CART, AWAITING_EMAIL, CONTACTING). Each inbound transport event is
normalized into an Event, dispatched to the handler for the conversation's
effective state, and the resulting next state is persisted after the
handler's side effects have completed.

Following Hexagonal Architecture, the engine only sees ports: the
SessionStore and the Catalog/Carts/Customers commerce services. Adapters
provide Redis persistence, the Moltin commerce client, and the Telegram and
terminal transports.

# Usage

	cfg, err := config.Load("shopfront.yaml")
	if err != nil {
		log.Fatal(err)
	}

	bot, err := shopfront.New(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer bot.Close()

	reply, err := bot.Engine.HandleEvent(ctx, domain.Event{
		ConversationID: "tg-123",
		Payload:        domain.Text("/start"),
	})

The shopfront CLI wraps this in the serve (Telegram long polling plus an ops
HTTP server) and chat (local terminal) commands.
*/
package shopfront
