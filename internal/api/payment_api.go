package api

import (
	"context"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// PaymentAPI covers rent payment history and recording.
type PaymentAPI struct {
	client *Client
}

func NewPaymentAPI(client *Client) *PaymentAPI {
	return &PaymentAPI{client: client}
}

func (a *PaymentAPI) ListForTenant(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	if err := a.client.get(ctx, "/tenant/payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *PaymentAPI) Upcoming(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	if err := a.client.get(ctx, "/tenant/payments/upcoming", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *PaymentAPI) ListForLandlord(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	if err := a.client.get(ctx, "/landlord/payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *PaymentAPI) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	var out domain.Payment
	if err := a.client.post(ctx, "/tenant/payments", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Record registers an offline payment the landlord received directly.
func (a *PaymentAPI) Record(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	var out domain.Payment
	if err := a.client.post(ctx, "/landlord/payments/record", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
