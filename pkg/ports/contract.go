package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shopfront/pkg/domain"
)

// RunSessionStoreContract runs a suite of tests to verify that a
// SessionStore implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	convID := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("State Round Trip", func(t *testing.T) {
		err := store.SetState(ctx, convID, domain.StateMenu)
		require.NoError(t, err, "SetState should not return error")

		got, err := store.State(ctx, convID)
		require.NoError(t, err, "State should not return error")
		assert.Equal(t, domain.StateMenu, got)
	})

	t.Run("State Overwrite", func(t *testing.T) {
		require.NoError(t, store.SetState(ctx, convID, domain.StateCart))
		require.NoError(t, store.SetState(ctx, convID, domain.StateContacting))

		got, err := store.State(ctx, convID)
		require.NoError(t, err)
		assert.Equal(t, domain.StateContacting, got, "last write wins")
	})

	t.Run("State Absent", func(t *testing.T) {
		_, err := store.State(ctx, "never-seen-"+convID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Customer Mapping Round Trip", func(t *testing.T) {
		err := store.SetCustomerID(ctx, convID, "cust-42")
		require.NoError(t, err)

		id, err := store.CustomerID(ctx, convID)
		require.NoError(t, err)
		assert.Equal(t, "cust-42", id, "customer id must round-trip exactly")
	})

	t.Run("Customer Mapping Absent", func(t *testing.T) {
		_, err := store.CustomerID(ctx, "never-seen-"+convID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Key Families Are Distinct", func(t *testing.T) {
		// A customer mapping must never shadow the state key of the same
		// conversation, and vice versa.
		id := convID + "-families"
		require.NoError(t, store.SetCustomerID(ctx, id, "cust-7"))

		_, err := store.State(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, store.SetState(ctx, id, domain.StateStart))
		got, err := store.CustomerID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "cust-7", got)
	})
}
