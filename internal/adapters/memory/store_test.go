package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/shopfront/internal/adapters/memory"
	"github.com/aretw0/shopfront/pkg/domain"
	"github.com/aretw0/shopfront/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.SetState(ctx, "same-conv", domain.StateMenu)
			_, _ = store.State(ctx, "same-conv")
		}()
	}
	wg.Wait()

	got, err := store.State(ctx, "same-conv")
	require.NoError(t, err)
	require.Equal(t, domain.StateMenu, got)
}
