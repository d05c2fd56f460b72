package mocks

import (
	"context"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// MockUserAPI implements domain.UserAPI for testing
type MockUserAPI struct {
	MeFunc             func(ctx context.Context) (*domain.UserProfile, error)
	UpdateProfileFunc  func(ctx context.Context, id string, patch map[string]any) (map[string]any, error)
	ChangePasswordFunc func(ctx context.Context, id, currentPassword, newPassword string) error
}

// NewMockUserAPI creates a new MockUserAPI with default behaviors
func NewMockUserAPI() *MockUserAPI {
	return &MockUserAPI{}
}

// Me fetches the current user profile
func (m *MockUserAPI) Me(ctx context.Context) (*domain.UserProfile, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx)
	}
	return &domain.UserProfile{
		ID:        "3",
		Email:     "tenant@example.com",
		FirstName: "Tenant",
		LastName:  "Test",
		Role:      domain.RoleTenant,
	}, nil
}

// UpdateProfile sends a merge-patch scoped to the user id
func (m *MockUserAPI) UpdateProfile(ctx context.Context, id string, patch map[string]any) (map[string]any, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, patch)
	}
	// Default behavior: echo the patch back as the server-returned fields
	echoed := make(map[string]any, len(patch))
	for k, v := range patch {
		echoed[k] = v
	}
	return echoed, nil
}

// ChangePassword rotates the password for the user id
func (m *MockUserAPI) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, id, currentPassword, newPassword)
	}
	return nil
}
