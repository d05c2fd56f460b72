package api

import (
	"context"
	"net/url"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// PurchaseAPI covers the property purchase workflow: request, landlord
// decision, then the hosted-checkout payment handoff.
type PurchaseAPI struct {
	client *Client
}

func NewPurchaseAPI(client *Client) *PurchaseAPI {
	return &PurchaseAPI{client: client}
}

func (a *PurchaseAPI) Create(ctx context.Context, propertyID string, notes string) (*domain.PurchaseRequest, error) {
	var out domain.PurchaseRequest
	body := map[string]any{"notes": notes}
	if err := a.client.post(ctx, "/property-purchase-requests/"+url.PathEscape(propertyID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PurchaseAPI) ListForTenant(ctx context.Context) ([]domain.PurchaseRequest, error) {
	var out []domain.PurchaseRequest
	if err := a.client.get(ctx, "/property-purchase-requests/tenant", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *PurchaseAPI) ListForLandlord(ctx context.Context) ([]domain.PurchaseRequest, error) {
	var out []domain.PurchaseRequest
	if err := a.client.get(ctx, "/property-purchase-requests/landlord", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus records the landlord's decision on a purchase request.
func (a *PurchaseAPI) UpdateStatus(ctx context.Context, id, status, notes string) (*domain.PurchaseRequest, error) {
	var out domain.PurchaseRequest
	body := map[string]any{"status": status, "responseNotes": notes}
	if err := a.client.put(ctx, "/property-purchase-requests/"+url.PathEscape(id)+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InitiatePayment creates a gateway order for an approved request. The
// returned order is passed to the hosted checkout unchanged.
func (a *PurchaseAPI) InitiatePayment(ctx context.Context, id string) (*domain.CheckoutOrder, error) {
	var out domain.CheckoutOrder
	if err := a.client.post(ctx, "/property-purchase-requests/"+url.PathEscape(id)+"/initiate-payment", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProcessPayment submits the gateway callback fields for server-side
// signature verification.
func (a *PurchaseAPI) ProcessPayment(ctx context.Context, id string, gatewayFields map[string]string) (*domain.PurchaseRequest, error) {
	var out domain.PurchaseRequest
	if err := a.client.post(ctx, "/property-purchase-requests/"+url.PathEscape(id)+"/process-payment", gatewayFields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PurchaseAPI) Cancel(ctx context.Context, id string) error {
	return a.client.post(ctx, "/property-purchase-requests/"+url.PathEscape(id)+"/cancel", struct{}{}, nil)
}
