package moltin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aretw0/shopfront/pkg/domain"
)

// Catalog implements ports.Catalog over the gateway. Pure passthrough reads,
// no local caching.
type Catalog struct {
	client *Client
}

// NewCatalog creates the catalog service.
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// productPayload mirrors the platform's product resource. Only the fields
// the conversation renders are mapped.
type productPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Meta        struct {
		DisplayPrice struct {
			WithTax struct {
				Formatted string `json:"formatted"`
			} `json:"with_tax"`
		} `json:"display_price"`
		Stock struct {
			Level int `json:"level"`
		} `json:"stock"`
	} `json:"meta"`
	Relationships struct {
		MainImage struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		} `json:"main_image"`
	} `json:"relationships"`
}

func (p productPayload) toDomain() domain.Product {
	return domain.Product{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		FormattedPrice: p.Meta.DisplayPrice.WithTax.Formatted,
		Stock:          p.Meta.Stock.Level,
		ImageID:        p.Relationships.MainImage.Data.ID,
	}
}

// Products returns the first page of the catalog.
func (s *Catalog) Products(ctx context.Context) ([]domain.Product, error) {
	body, err := s.client.Do(ctx, http.MethodGet, "products", nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []productPayload `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	products := make([]domain.Product, 0, len(envelope.Data))
	for _, p := range envelope.Data {
		products = append(products, p.toDomain())
	}
	return products, nil
}

// Product returns one product by id.
func (s *Catalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	body, err := s.client.Do(ctx, http.MethodGet, "products/"+id, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data productPayload `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding product %s: %w", id, err)
	}

	product := envelope.Data.toDomain()
	return &product, nil
}

// FileURL resolves an asset id to its public URL.
func (s *Catalog) FileURL(ctx context.Context, id string) (string, error) {
	body, err := s.client.Do(ctx, http.MethodGet, "files/"+id, nil)
	if err != nil {
		return "", err
	}

	var envelope struct {
		Data struct {
			Link struct {
				Href string `json:"href"`
			} `json:"link"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("decoding file %s: %w", id, err)
	}
	return envelope.Data.Link.Href, nil
}
