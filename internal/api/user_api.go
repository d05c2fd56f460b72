package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// HTTPUserAPI implements domain.UserAPI against the /users endpoint group.
type HTTPUserAPI struct {
	client *Client
}

func NewUserAPI(client *Client) *HTTPUserAPI {
	return &HTTPUserAPI{client: client}
}

func (a *HTTPUserAPI) Me(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := a.client.get(ctx, "/users/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile sends only the changed fields and returns whatever subset
// the server echoes back.
func (a *HTTPUserAPI) UpdateProfile(ctx context.Context, id string, patch map[string]any) (map[string]any, error) {
	var echoed map[string]any
	if err := a.client.post(ctx, "/users/"+url.PathEscape(id)+"/profile", patch, &echoed); err != nil {
		return nil, err
	}
	return echoed, nil
}

// ChangePassword carries both passwords as query parameters, matching the
// server contract for this endpoint.
func (a *HTTPUserAPI) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	q := url.Values{}
	q.Set("currentPassword", currentPassword)
	q.Set("newPassword", newPassword)
	return a.client.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/password", q, nil, nil)
}
