package moltin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/shopfront/pkg/domain"
)

// Carts implements ports.Carts over the gateway.
type Carts struct {
	client *Client
}

// NewCarts creates the cart service.
func NewCarts(client *Client) *Carts {
	return &Carts{client: client}
}

type cartItemPayload struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Meta        struct {
		DisplayPrice struct {
			WithTax struct {
				Unit struct {
					Formatted string `json:"formatted"`
				} `json:"unit"`
				Value struct {
					Formatted string `json:"formatted"`
				} `json:"value"`
			} `json:"with_tax"`
		} `json:"display_price"`
	} `json:"meta"`
}

// Cart returns the aggregate view (id and formatted total).
func (s *Carts) Cart(ctx context.Context, cartKey string) (*domain.Cart, error) {
	body, err := s.client.Do(ctx, http.MethodGet, "carts/"+cartKey, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data struct {
			ID   string `json:"id"`
			Meta struct {
				DisplayPrice struct {
					WithTax struct {
						Formatted string `json:"formatted"`
					} `json:"with_tax"`
				} `json:"display_price"`
			} `json:"meta"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding cart %s: %w", cartKey, err)
	}

	return &domain.Cart{
		ID:             envelope.Data.ID,
		FormattedTotal: envelope.Data.Meta.DisplayPrice.WithTax.Formatted,
	}, nil
}

// Items returns the cart's line items.
func (s *Carts) Items(ctx context.Context, cartKey string) ([]domain.CartItem, error) {
	body, err := s.client.Do(ctx, http.MethodGet, "carts/"+cartKey+"/items", nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []cartItemPayload `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding cart %s items: %w", cartKey, err)
	}

	items := make([]domain.CartItem, 0, len(envelope.Data))
	for _, it := range envelope.Data {
		items = append(items, domain.CartItem{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.Meta.DisplayPrice.WithTax.Unit.Formatted,
			LineTotal:   it.Meta.DisplayPrice.WithTax.Value.Formatted,
		})
	}
	return items, nil
}

// AddItem adds quantity units of a product to the cart. The cart is created
// implicitly by the platform on first add. Stock validation is the
// platform's job; a rejection surfaces as *domain.APIError.
func (s *Carts) AddItem(ctx context.Context, cartKey, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be a positive integer, got %d", quantity)
	}

	payload := map[string]any{
		"data": map[string]any{
			"id":       productID,
			"type":     "cart_item",
			"quantity": quantity,
		},
	}
	_, err := s.client.Do(ctx, http.MethodPost, "carts/"+cartKey+"/items", payload)
	return err
}

// RemoveItem deletes one line item from the cart.
func (s *Carts) RemoveItem(ctx context.Context, cartKey, itemID string) error {
	_, err := s.client.Do(ctx, http.MethodDelete, "carts/"+cartKey+"/items/"+itemID, nil)
	return err
}

// Delete removes the whole cart. True only when the platform answered with
// 204; deleting a missing or already-deleted cart reports false, not an
// error, so cancellation can be repeated safely.
func (s *Carts) Delete(ctx context.Context, cartKey string) (bool, error) {
	status, _, err := s.client.DoStatus(ctx, http.MethodDelete, "carts/"+cartKey, nil)
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			return false, nil
		}
		return false, err
	}
	return status == http.StatusNoContent, nil
}
