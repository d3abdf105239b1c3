package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by session stores when a key has no value.
var ErrNotFound = errors.New("session value not found")

// AuthError means the token exchange with the commerce platform failed.
// It is distinct from APIError: an AuthError surfaces only when no token
// could be obtained at all.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token exchange failed: status %d: %s", e.Status, e.Body)
}

// APIError is any non-2xx response from the commerce API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("commerce api: status %d: %s", e.Status, e.Body)
}

// StateError means a persisted state value was not one of the enumerated
// states. The engine resolves it by falling back to START; it never reaches
// the user.
type StateError struct {
	Value string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("unrecognized conversation state %q", e.Value)
}

// StoreError wraps a session-store failure. It is fatal for the turn it
// occurs in: the turn is abandoned and no state update happens.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("session store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
