package ports

import (
	"context"

	"github.com/aretw0/shopfront/pkg/domain"
)

// SessionStore persists per-conversation data in an external key-value
// service. Two key families exist per conversation: the state key and the
// customer-mapping key. Operations are atomic per key; no cross-key
// transactions are assumed.
type SessionStore interface {
	// State returns the stored state for a conversation.
	// Returns domain.ErrNotFound when no state was ever stored, and a
	// *domain.StateError when a value exists but is not a recognized state.
	State(ctx context.Context, conversationID string) (domain.State, error)

	// SetState persists the state, overwriting any previous value.
	SetState(ctx context.Context, conversationID string, state domain.State) error

	// CustomerID returns the commerce-platform customer id mapped to a
	// conversation. Returns domain.ErrNotFound when no mapping exists.
	CustomerID(ctx context.Context, conversationID string) (string, error)

	// SetCustomerID persists the conversation -> customer id mapping.
	// A mapping, once created, is reused for all subsequent updates.
	SetCustomerID(ctx context.Context, conversationID, customerID string) error
}
