// Package engine implements the conversation state machine: it normalizes
// nothing itself (transports do that), resolves the effective state from the
// session store, dispatches to the per-state handler, and persists the next
// state after the handler's side effects completed.
package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/shopfront/internal/logging"
	"github.com/aretw0/shopfront/internal/metrics"
	"github.com/aretw0/shopfront/pkg/domain"
	"github.com/aretw0/shopfront/pkg/ports"
)

// startCommand forces the conversation back to the initial state regardless
// of anything persisted.
const startCommand = "/start"

// fallbackMessage is shown when a commerce call fails mid-turn. The turn
// does not advance; the user can simply retry.
const fallbackMessage = "Something went wrong on our side. Please try again in a moment."

// Engine drives one conversation turn at a time. Conversations are handled
// concurrently relative to each other; the transport is assumed to serialize
// delivery within a single conversation.
type Engine struct {
	catalog   ports.Catalog
	carts     ports.Carts
	customers ports.Customers
	store     ports.SessionStore
	logger    *slog.Logger
	metrics   *metrics.Set
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger configures a logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics configures the collector set used by the engine.
func WithMetrics(m *metrics.Set) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New creates an engine over the given services and session store.
func New(catalog ports.Catalog, carts ports.Carts, customers ports.Customers, store ports.SessionStore, opts ...Option) *Engine {
	e := &Engine{
		catalog:   catalog,
		carts:     carts,
		customers: customers,
		store:     store,
		logger:    logging.NewNop(),
		metrics:   metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleEvent runs one turn: resolve effective state, dispatch, persist.
//
// Persistence happens unconditionally after the handler returns, even when
// the conversation "stays" in the same state: the store has no default
// value, so every turn must leave an explicit one. It also happens strictly
// after the handler's external side effects, so a crash in between re-enters
// the conversation from its prior state rather than past an action that
// never ran.
//
// Commerce failures (auth or API) do not fail the turn: the user gets a
// fallback message and the effective state is re-persisted. Session-store
// failures abandon the turn entirely.
func (e *Engine) HandleEvent(ctx context.Context, ev domain.Event) (*domain.Reply, error) {
	state, err := e.effectiveState(ctx, ev)
	if err != nil {
		e.metrics.TurnFailures.Inc()
		return nil, err
	}
	e.metrics.Turns.WithLabelValues(string(state)).Inc()

	reply, next, err := e.dispatch(ctx, state, ev)
	if err != nil {
		var apiErr *domain.APIError
		var authErr *domain.AuthError
		if errors.As(err, &apiErr) || errors.As(err, &authErr) {
			e.logger.Warn("commerce call failed, turn not advanced",
				"conversation", ev.ConversationID, "state", state, "err", err)
			reply, next = domain.Say(fallbackMessage), state
		} else {
			e.metrics.TurnFailures.Inc()
			return nil, err
		}
	}

	if err := e.store.SetState(ctx, ev.ConversationID, next); err != nil {
		// Turn abandoned: side effects happened but the state did not
		// advance. Handlers tolerate re-dispatch from the prior state.
		e.metrics.TurnFailures.Inc()
		return nil, err
	}

	e.logger.Debug("turn handled", "conversation", ev.ConversationID, "state", state, "next", next)
	return reply, nil
}

// effectiveState applies the /start override, then falls back to START when
// nothing (or garbage) is stored. Only a store failure is an error here.
func (e *Engine) effectiveState(ctx context.Context, ev domain.Event) (domain.State, error) {
	if ev.Payload != nil && ev.Payload.Value() == startCommand {
		return domain.StateStart, nil
	}

	state, err := e.store.State(ctx, ev.ConversationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StateStart, nil
		}
		var stateErr *domain.StateError
		if errors.As(err, &stateErr) {
			e.logger.Warn("unrecognized stored state, falling back to START",
				"conversation", ev.ConversationID, "value", stateErr.Value)
			return domain.StateStart, nil
		}
		return "", err
	}
	return state, nil
}

// dispatch routes the event to the handler for the effective state. The
// switch is exhaustive over the State enum; effectiveState never yields
// anything else.
func (e *Engine) dispatch(ctx context.Context, state domain.State, ev domain.Event) (*domain.Reply, domain.State, error) {
	switch state {
	case domain.StateStart:
		return e.handleStart(ctx, ev)
	case domain.StateMenu:
		return e.handleMenu(ctx, ev)
	case domain.StateDescription:
		return e.handleDescription(ctx, ev)
	case domain.StateCart:
		return e.handleCart(ctx, ev)
	case domain.StateAwaitingEmail:
		return e.handleAwaitingEmail(ctx, ev)
	case domain.StateContacting:
		return e.handleContacting(ctx, ev)
	default:
		return nil, "", &domain.StateError{Value: string(state)}
	}
}
