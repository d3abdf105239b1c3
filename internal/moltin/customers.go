package moltin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aretw0/shopfront/pkg/domain"
)

// Customers implements ports.Customers over the gateway.
type Customers struct {
	client *Client
}

// NewCustomers creates the customer service.
func NewCustomers(client *Client) *Customers {
	return &Customers{client: client}
}

func customerBody(info domain.CustomerInfo) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"type":  "customer",
			"name":  info.Name,
			"email": info.Email,
		},
	}
}

// Create registers a new customer and returns the platform-assigned id.
// The email is passed through unvalidated; rejections surface as *domain.APIError.
func (s *Customers) Create(ctx context.Context, info domain.CustomerInfo) (string, error) {
	body, err := s.client.Do(ctx, http.MethodPost, "customers", customerBody(info))
	if err != nil {
		return "", err
	}

	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("decoding customer create response: %w", err)
	}
	return envelope.Data.ID, nil
}

// Update overwrites an existing customer record.
func (s *Customers) Update(ctx context.Context, id string, info domain.CustomerInfo) error {
	_, err := s.client.Do(ctx, http.MethodPut, "customers/"+id, customerBody(info))
	return err
}
