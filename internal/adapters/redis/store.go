// Package redis provides the Redis-backed session store adapter.
package redis

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/shopfront/pkg/domain"
)

// Store implements ports.SessionStore using Redis. Two key families hang off
// the prefix: "state:" for the conversation state and "customer:" for the
// conversation -> customer id mapping. Values are opaque strings and
// round-trip exactly.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key namespace prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "shopfront:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) stateKey(conversationID string) string {
	return s.prefix + "state:" + conversationID
}

func (s *Store) customerKey(conversationID string) string {
	return s.prefix + "customer:" + conversationID
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == backend.Nil {
			return "", domain.ErrNotFound
		}
		return "", &domain.StoreError{Op: fmt.Sprintf("get %s", key), Err: err}
	}
	return val, nil
}

func (s *Store) set(ctx context.Context, key, value string) error {
	// No TTL: every turn must leave an explicit value, so nothing may
	// silently expire out from under a conversation.
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return &domain.StoreError{Op: fmt.Sprintf("set %s", key), Err: err}
	}
	return nil
}

// State returns the stored conversation state.
func (s *Store) State(ctx context.Context, conversationID string) (domain.State, error) {
	raw, err := s.get(ctx, s.stateKey(conversationID))
	if err != nil {
		return "", err
	}
	return domain.ParseState(raw)
}

// SetState persists the conversation state, overwriting any previous value.
func (s *Store) SetState(ctx context.Context, conversationID string, state domain.State) error {
	return s.set(ctx, s.stateKey(conversationID), string(state))
}

// CustomerID returns the customer id mapped to the conversation.
func (s *Store) CustomerID(ctx context.Context, conversationID string) (string, error) {
	return s.get(ctx, s.customerKey(conversationID))
}

// SetCustomerID persists the conversation -> customer id mapping.
func (s *Store) SetCustomerID(ctx context.Context, conversationID, customerID string) error {
	return s.set(ctx, s.customerKey(conversationID), customerID)
}

// Ping verifies the Redis connection, for startup checks.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return &domain.StoreError{Op: "ping", Err: err}
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
