package api

import (
	"context"
	"net/url"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// MaintenanceAPI covers maintenance tickets from both sides: tenants file
// and track them, landlords triage and resolve them.
type MaintenanceAPI struct {
	client *Client
}

func NewMaintenanceAPI(client *Client) *MaintenanceAPI {
	return &MaintenanceAPI{client: client}
}

func (a *MaintenanceAPI) ListForTenant(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	if err := a.client.get(ctx, "/tenant/maintenance-requests", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *MaintenanceAPI) ListForLandlord(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	if err := a.client.get(ctx, "/landlord/maintenance-requests", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *MaintenanceAPI) Get(ctx context.Context, id string) (*domain.MaintenanceRequest, error) {
	var out domain.MaintenanceRequest
	if err := a.client.get(ctx, "/maintenance-requests/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *MaintenanceAPI) Create(ctx context.Context, req *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	var out domain.MaintenanceRequest
	if err := a.client.post(ctx, "/tenant/maintenance-requests", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial change, typically a status transition or a
// resolution note from the landlord side.
func (a *MaintenanceAPI) Update(ctx context.Context, id string, patch map[string]any) (*domain.MaintenanceRequest, error) {
	var out domain.MaintenanceRequest
	if err := a.client.put(ctx, "/maintenance-requests/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
