package mocks

import (
	"context"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// MockAuthAPI implements domain.AuthAPI for testing
type MockAuthAPI struct {
	LoginFunc    func(ctx context.Context, email, password string) (*domain.AuthResponse, error)
	RegisterFunc func(ctx context.Context, reg *domain.Registration) (*domain.AuthResponse, error)
	LogoutFunc   func(ctx context.Context) error
}

// NewMockAuthAPI creates a new MockAuthAPI with default behaviors
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{}
}

// Login calls the remote login endpoint
func (m *MockAuthAPI) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: accept any credentials as a tenant
	return &domain.AuthResponse{
		Token:     "mock-token-for-" + email,
		ID:        "3",
		Email:     email,
		FirstName: "Tenant",
		LastName:  "Test",
		Role:      domain.RoleTenant,
	}, nil
}

// Register calls the remote registration endpoint
func (m *MockAuthAPI) Register(ctx context.Context, reg *domain.Registration) (*domain.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	role := reg.Role
	if role == "" {
		role = domain.RoleTenant
	}
	return &domain.AuthResponse{
		Token:     "mock-token-for-" + reg.Email,
		ID:        "4",
		Email:     reg.Email,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Role:      role,
	}, nil
}

// Logout calls the remote logout endpoint
func (m *MockAuthAPI) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}
