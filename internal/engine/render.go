package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/shopfront/pkg/domain"
)

var (
	cartButton = domain.Button{Label: "Cart", Data: selectCart}
	menuButton = domain.Button{Label: "Back to menu", Data: selectMenu}
	payButton  = domain.Button{Label: "Pay", Data: selectPay}
)

// renderMenu fetches the catalog and lays products out two per row, with the
// cart button on its own row.
func (e *Engine) renderMenu(ctx context.Context) (*domain.Reply, error) {
	products, err := e.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	var rows [][]domain.Button
	var row []domain.Button
	for _, p := range products {
		row = append(row, domain.Button{Label: p.Name, Data: p.ID})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []domain.Button{cartButton})

	reply := domain.Say("Choose goods:", rows...)
	reply.ReplacePrior = true
	return reply, nil
}

// renderDescription fetches a product and its image and offers fixed
// quantity picks.
func (e *Engine) renderDescription(ctx context.Context, productID string) (*domain.Reply, error) {
	product, err := e.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	imageURL, err := e.catalog.FileURL(ctx, product.ImageID)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("%s\n\n%s per kg\n%dkg on stock\n\n%s",
		product.Name, product.FormattedPrice, product.Stock, product.Description)

	rows := [][]domain.Button{
		{
			{Label: "1 kg", Data: product.ID + ",1"},
			{Label: "5 kg", Data: product.ID + ",5"},
			{Label: "10 kg", Data: product.ID + ",10"},
		},
		{menuButton},
		{cartButton},
	}

	return &domain.Reply{
		Messages: []domain.Message{{
			Text:     text,
			ImageURL: imageURL,
			Buttons:  rows,
		}},
		Ack:          product.Name,
		ReplacePrior: true,
	}, nil
}

// renderCart fetches the items and, when the cart is non-empty, the
// aggregate total exactly once. An empty cart offers only the way back to
// the menu — no pay affordance.
func (e *Engine) renderCart(ctx context.Context, conversationID string) (*domain.Reply, error) {
	cartKey := domain.CartKey(conversationID)

	items, err := e.carts.Items(ctx, cartKey)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		reply := domain.Say("You don't have any items in your cart.", []domain.Button{menuButton})
		reply.Ack = "Cart"
		reply.ReplacePrior = true
		return reply, nil
	}

	var text strings.Builder
	text.WriteString("In your cart:\n\n")
	var rows [][]domain.Button
	for _, item := range items {
		fmt.Fprintf(&text, "%s\n%s\n%s per kg\n%dkg in cart for %s\n\n",
			item.Name, item.Description, item.UnitPrice, item.Quantity, item.LineTotal)
		rows = append(rows, []domain.Button{
			{Label: "Remove " + item.Name, Data: item.ID},
		})
	}

	cart, err := e.carts.Cart(ctx, cartKey)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&text, "Total: %s", cart.FormattedTotal)

	rows = append(rows, []domain.Button{payButton}, []domain.Button{menuButton})

	reply := domain.Say(text.String(), rows...)
	reply.Ack = "Cart"
	reply.ReplacePrior = true
	return reply, nil
}
