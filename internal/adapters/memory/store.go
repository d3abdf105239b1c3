// Package memory provides an in-memory session store, used by tests and by
// the local chat mode.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/shopfront/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	states    map[string]string
	customers map[string]string
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		states:    make(map[string]string),
		customers: make(map[string]string),
	}
}

// State returns the stored conversation state.
func (s *Store) State(ctx context.Context, conversationID string) (domain.State, error) {
	s.mu.RLock()
	raw, ok := s.states[conversationID]
	s.mu.RUnlock()
	if !ok {
		return "", domain.ErrNotFound
	}
	return domain.ParseState(raw)
}

// SetState persists the conversation state.
func (s *Store) SetState(ctx context.Context, conversationID string, state domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[conversationID] = string(state)
	return nil
}

// CustomerID returns the customer id mapped to the conversation.
func (s *Store) CustomerID(ctx context.Context, conversationID string) (string, error) {
	s.mu.RLock()
	id, ok := s.customers[conversationID]
	s.mu.RUnlock()
	if !ok {
		return "", domain.ErrNotFound
	}
	return id, nil
}

// SetCustomerID persists the conversation -> customer id mapping.
func (s *Store) SetCustomerID(ctx context.Context, conversationID, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[conversationID] = customerID
	return nil
}
