package api

import (
	"context"
	"net/url"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// LeaseAPI covers lease lookups and their attached documents.
type LeaseAPI struct {
	client *Client
}

func NewLeaseAPI(client *Client) *LeaseAPI {
	return &LeaseAPI{client: client}
}

func (a *LeaseAPI) List(ctx context.Context) ([]domain.Lease, error) {
	var out []domain.Lease
	if err := a.client.get(ctx, "/leases", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *LeaseAPI) Get(ctx context.Context, id string) (*domain.Lease, error) {
	var out domain.Lease
	if err := a.client.get(ctx, "/leases/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TenantLease returns the active lease for the authenticated tenant.
func (a *LeaseAPI) TenantLease(ctx context.Context) (*domain.Lease, error) {
	var out domain.Lease
	if err := a.client.get(ctx, "/tenant/lease", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *LeaseAPI) Documents(ctx context.Context, id string) ([]string, error) {
	var out []string
	if err := a.client.get(ctx, "/leases/"+url.PathEscape(id)+"/documents", &out); err != nil {
		return nil, err
	}
	return out, nil
}
