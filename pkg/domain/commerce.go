package domain

// Product is a read-only catalog entry. Pricing fields arrive formatted by
// the commerce platform and are never computed locally.
type Product struct {
	ID          string
	Name        string
	Description string

	// FormattedPrice is the display price per unit, tax included.
	FormattedPrice string

	// Stock is the available level reported by the platform.
	Stock int

	// ImageID references the product's main image asset.
	ImageID string
}

// CartItem is one line of a cart. The unit price and line total are
// platform-formatted strings.
type CartItem struct {
	ID          string
	ProductID   string
	Name        string
	Description string
	Quantity    int
	UnitPrice   string
	LineTotal   string
}

// Cart is the aggregate view of a cart. Only the formatted total is
// interesting to the conversation; line items are fetched separately.
type Cart struct {
	ID             string
	FormattedTotal string
}

// CustomerInfo is the contact data collected from the user.
type CustomerInfo struct {
	Name  string
	Email string
}

// Customer is a commerce-platform customer record.
type Customer struct {
	ID    string
	Name  string
	Email string
}
