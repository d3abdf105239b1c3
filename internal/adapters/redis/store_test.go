package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shopfront/internal/adapters/redis"
	"github.com/aretw0/shopfront/pkg/domain"
	"github.com/aretw0/shopfront/pkg/ports"
)

func newTestStore(t *testing.T) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunSessionStoreContract(t, store)
}

func TestRedisStore_UnrecognizedState(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	// A value written outside the enum must come back as a StateError, so
	// the engine can fall back to START instead of crashing the turn.
	require.NoError(t, mr.Set("shopfront:state:conv-1", "HANDLE_MENU"))

	_, err := store.State(ctx, "conv-1")
	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "HANDLE_MENU", stateErr.Value)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithPrefix("other:"))

	ctx := context.Background()
	require.NoError(t, store.SetState(ctx, "conv-2", domain.StateCart))

	got, err := mr.Get("other:state:conv-2")
	require.NoError(t, err)
	assert.Equal(t, "CART", got)
}

func TestRedisStore_StoreError(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.State(context.Background(), "conv-3")
	var storeErr *domain.StoreError
	assert.ErrorAs(t, err, &storeErr, "an unreachable store is a StoreError, not a not-found")
}

func TestRedisStore_Ping(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
