package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/shopfront/pkg/domain"
)

const (
	selectCart = "cart"
	selectMenu = "menu"
	selectPay  = "pay"
)

const emailPrompt = "Send your email, please"

const contactingNotice = "We will contact you shortly.\n" +
	"If you want to change email, send «change email»\n" +
	"If you want to cancel order, send «/cancel»"

const cancelledNotice = "Order cancelled. Send /start to choose goods"

// handleStart shows the menu for any input.
func (e *Engine) handleStart(ctx context.Context, ev domain.Event) (*domain.Reply, domain.State, error) {
	reply, err := e.renderMenu(ctx)
	if err != nil {
		return nil, "", err
	}
	return reply, domain.StateMenu, nil
}

// handleMenu expects either the cart button or a product pick.
func (e *Engine) handleMenu(ctx context.Context, ev domain.Event) (*domain.Reply, domain.State, error) {
	if ev.Payload.Value() == selectCart {
		reply, err := e.renderCart(ctx, ev.ConversationID)
		if err != nil {
			return nil, "", err
		}
		return reply, domain.StateCart, nil
	}

	reply, err := e.renderDescription(ctx, ev.Payload.Value())
	if err != nil {
		return nil, "", err
	}
	return reply, domain.StateDescription, nil
}

// handleDescription expects a navigation button or a "<product>,<qty>" pick.
func (e *Engine) handleDescription(ctx context.Context, ev domain.Event) (*domain.Reply, domain.State, error) {
	switch val := ev.Payload.Value(); val {
	case selectMenu:
		reply, err := e.renderMenu(ctx)
		if err != nil {
			return nil, "", err
		}
		return reply, domain.StateMenu, nil
	case selectCart:
		reply, err := e.renderCart(ctx, ev.ConversationID)
		if err != nil {
			return nil, "", err
		}
		return reply, domain.StateCart, nil
	default:
		productID, rawQty, ok := strings.Cut(val, ",")
		if !ok {
			return domain.Say("Please use the quantity buttons."), domain.StateDescription, nil
		}
		qty, err := strconv.Atoi(rawQty)
		if err != nil || qty < 1 {
			return domain.Say("Please use the quantity buttons."), domain.StateDescription, nil
		}

		// Repeating this add on re-dispatch is acceptable; the cart just
		// carries more units.
		if err := e.carts.AddItem(ctx, domain.CartKey(ev.ConversationID), productID, qty); err != nil {
			return nil, "", err
		}
		return &domain.Reply{Ack: fmt.Sprintf("%d kg added to cart", qty)}, domain.StateDescription, nil
	}
}

// handleCart expects a navigation button, the pay button, or an item to remove.
func (e *Engine) handleCart(ctx context.Context, ev domain.Event) (*domain.Reply, domain.State, error) {
	switch val := ev.Payload.Value(); val {
	case selectMenu:
		reply, err := e.renderMenu(ctx)
		if err != nil {
			return nil, "", err
		}
		return reply, domain.StateMenu, nil
	case selectPay:
		reply := domain.Say(emailPrompt)
		reply.Ack = emailPrompt
		return reply, domain.StateAwaitingEmail, nil
	default:
		if err := e.carts.RemoveItem(ctx, domain.CartKey(ev.ConversationID), val); err != nil {
			return nil, "", err
		}
		reply, err := e.renderCart(ctx, ev.ConversationID)
		if err != nil {
			return nil, "", err
		}
		return reply, domain.StateCart, nil
	}
}

// handleAwaitingEmail upserts the customer record and hands off to a human.
func (e *Engine) handleAwaitingEmail(ctx context.Context, ev domain.Event) (*domain.Reply, domain.State, error) {
	text, ok := ev.Payload.(domain.Text)
	if !ok {
		// Button presses carry no email; ask again.
		return domain.Say(emailPrompt), domain.StateAwaitingEmail, nil
	}

	info := domain.CustomerInfo{
		Name:  ev.ConversationID,
		Email: string(text),
	}
	if err := e.upsertCustomer(ctx, ev.ConversationID, info); err != nil {
		return nil, "", err
	}

	return domain.Say(contactingNotice), domain.StateContacting, nil
}

// upsertCustomer reuses an existing conversation -> customer mapping when
// one exists; otherwise it creates the customer and records the new id.
func (e *Engine) upsertCustomer(ctx context.Context, conversationID string, info domain.CustomerInfo) error {
	customerID, err := e.store.CustomerID(ctx, conversationID)
	switch {
	case err == nil:
		return e.customers.Update(ctx, customerID, info)
	case errors.Is(err, domain.ErrNotFound):
		id, err := e.customers.Create(ctx, info)
		if err != nil {
			return err
		}
		return e.store.SetCustomerID(ctx, conversationID, id)
	default:
		return err
	}
}

// handleContacting loops until the user changes email or cancels.
func (e *Engine) handleContacting(ctx context.Context, ev domain.Event) (*domain.Reply, domain.State, error) {
	text, ok := ev.Payload.(domain.Text)
	if !ok {
		reply := domain.Say(contactingNotice)
		reply.Ack = "We will contact you shortly"
		return reply, domain.StateContacting, nil
	}

	switch {
	case strings.EqualFold(string(text), "change email"):
		return domain.Say(emailPrompt), domain.StateAwaitingEmail, nil
	case string(text) == "/cancel":
		// A second cancel finds no cart; Delete reports false then, which
		// is fine — the outcome the user asked for already holds.
		deleted, err := e.carts.Delete(ctx, domain.CartKey(ev.ConversationID))
		if err != nil {
			return nil, "", err
		}
		if !deleted {
			e.logger.Debug("cancel with no cart to delete", "conversation", ev.ConversationID)
		}
		return domain.Say(cancelledNotice), domain.StateStart, nil
	default:
		e.logger.Warn("unexpected message while contacting", "conversation", ev.ConversationID)
		return domain.Say(contactingNotice), domain.StateContacting, nil
	}
}
