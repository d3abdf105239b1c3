package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shopfront/pkg/domain"
)

func TestCartRendering(t *testing.T) {
	t.Run("empty cart offers only the menu", func(t *testing.T) {
		w := newWorld(t)
		w.setState(t, domain.StateMenu)

		reply := w.handle(t, domain.Selection("cart"))

		require.Len(t, reply.Messages, 1)
		assert.Contains(t, reply.Messages[0].Text, "don't have any items")

		data := buttonData(reply)
		assert.Contains(t, data, "menu")
		assert.NotContains(t, data, "pay", "an empty cart must never offer payment")
		assert.Equal(t, 0, w.carts.cartFetches, "no total fetch for an empty cart")
	})

	t.Run("full cart lists items and fetches the total once", func(t *testing.T) {
		w := newWorld(t)
		w.setState(t, domain.StateMenu)
		cartKey := domain.CartKey(convID)
		w.carts.items[cartKey] = []domain.CartItem{
			{ID: "item-1", ProductID: "p42", Name: "Blue Tuna", Description: "Fresh", Quantity: 5, UnitPrice: "$12.00", LineTotal: "$60.00"},
			{ID: "item-2", ProductID: "p43", Name: "Red Salmon", Description: "Smoked", Quantity: 2, UnitPrice: "$9.00", LineTotal: "$18.00"},
		}
		w.carts.totals[cartKey] = "$78.00"

		reply := w.handle(t, domain.Selection("cart"))

		require.Len(t, reply.Messages, 1)
		text := reply.Messages[0].Text
		assert.Contains(t, text, "Blue Tuna")
		assert.Contains(t, text, "5kg in cart for $60.00")
		assert.Contains(t, text, "Red Salmon")
		assert.Contains(t, text, "2kg in cart for $18.00")
		assert.Contains(t, text, "Total: $78.00")

		data := buttonData(reply)
		assert.Contains(t, data, "pay")
		assert.Contains(t, data, "item-1")
		assert.Contains(t, data, "item-2")

		assert.Equal(t, 1, w.carts.cartFetches, "aggregate total is fetched once per render, not per item")
	})
}

func TestMenuRendering(t *testing.T) {
	w := newWorld(t)

	reply := w.handle(t, domain.Text("/start"))

	require.Len(t, reply.Messages, 1)
	data := buttonData(reply)
	assert.Contains(t, data, "p42")
	assert.Contains(t, data, "p43")
	assert.Contains(t, data, "cart")
	assert.True(t, reply.ReplacePrior, "menu replaces the previous keyboard message")
}
