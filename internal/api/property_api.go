package api

import (
	"context"
	"net/url"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// PropertyAPI covers both the public browsing endpoints and the
// landlord-scoped management endpoints.
type PropertyAPI struct {
	client *Client
}

func NewPropertyAPI(client *Client) *PropertyAPI {
	return &PropertyAPI{client: client}
}

func (a *PropertyAPI) List(ctx context.Context) ([]domain.Property, error) {
	var out []domain.Property
	if err := a.client.get(ctx, "/properties", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *PropertyAPI) Available(ctx context.Context) ([]domain.Property, error) {
	var out []domain.Property
	if err := a.client.get(ctx, "/properties/available", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *PropertyAPI) Get(ctx context.Context, id string) (*domain.Property, error) {
	var out domain.Property
	if err := a.client.get(ctx, "/properties/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMine returns the properties owned by the authenticated landlord.
func (a *PropertyAPI) ListMine(ctx context.Context) ([]domain.Property, error) {
	var out []domain.Property
	if err := a.client.get(ctx, "/landlord/properties", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *PropertyAPI) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	var out domain.Property
	if err := a.client.post(ctx, "/landlord/properties", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PropertyAPI) Update(ctx context.Context, id string, p *domain.Property) (*domain.Property, error) {
	var out domain.Property
	if err := a.client.put(ctx, "/landlord/properties/"+url.PathEscape(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PropertyAPI) Delete(ctx context.Context, id string) error {
	return a.client.delete(ctx, "/landlord/properties/"+url.PathEscape(id))
}
