package ports

import (
	"context"

	"github.com/aretw0/shopfront/pkg/domain"
)

// Catalog exposes read-only product and asset lookups.
type Catalog interface {
	// Products returns the first page of the catalog. Pagination beyond a
	// single page is out of scope.
	Products(ctx context.Context) ([]domain.Product, error)

	// Product returns a single product by id.
	Product(ctx context.Context, id string) (*domain.Product, error)

	// FileURL resolves an asset id to its public URL.
	FileURL(ctx context.Context, id string) (string, error)
}

// Carts exposes cart read and mutate operations, keyed by the cart key
// derived from the conversation id (domain.CartKey).
type Carts interface {
	// Cart returns the aggregate cart view (formatted total).
	Cart(ctx context.Context, cartKey string) (*domain.Cart, error)

	// Items returns the cart's line items.
	Items(ctx context.Context, cartKey string) ([]domain.CartItem, error)

	// AddItem adds quantity units of a product. Quantity must be positive;
	// stock validation is the platform's job and surfaces as *domain.APIError.
	AddItem(ctx context.Context, cartKey, productID string, quantity int) error

	// RemoveItem deletes one line item.
	RemoveItem(ctx context.Context, cartKey, itemID string) error

	// Delete removes the whole cart. It reports true only when the platform
	// confirmed with an empty-success status; deleting a missing cart
	// reports false without an error.
	Delete(ctx context.Context, cartKey string) (bool, error)
}

// Customers exposes customer create/update. No local validation of the
// email syntax happens here; platform rejections surface as *domain.APIError.
type Customers interface {
	Create(ctx context.Context, info domain.CustomerInfo) (string, error)
	Update(ctx context.Context, id string, info domain.CustomerInfo) error
}
