package api

import (
	"context"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// HTTPAuthAPI implements domain.AuthAPI against the /auth endpoint group.
type HTTPAuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *HTTPAuthAPI {
	return &HTTPAuthAPI{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *HTTPAuthAPI) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := a.client.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *HTTPAuthAPI) Register(ctx context.Context, reg *domain.Registration) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := a.client.post(ctx, "/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout tells the server to drop the refresh session. The caller clears
// local state before invoking this, so a failure here is advisory.
func (a *HTTPAuthAPI) Logout(ctx context.Context) error {
	return a.client.post(ctx, "/auth/logout", struct{}{}, nil)
}
