package mocks

import (
	"sync"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// MockCredentialStore implements domain.CredentialStore for testing.
// Default behavior is a working in-memory store; individual operations can
// be overridden through the func fields.
type MockCredentialStore struct {
	SaveFunc        func(token string, user *domain.UserProfile) error
	UpdateTokenFunc func(token string) error
	LoadFunc        func() (*domain.Credentials, error)
	ClearFunc       func() error
	IsPresentFunc   func() bool

	mu    sync.Mutex
	creds *domain.Credentials
}

// NewMockCredentialStore creates a new MockCredentialStore with default behaviors
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{}
}

// Save persists the record in memory
func (m *MockCredentialStore) Save(token string, user *domain.UserProfile) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(token, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &domain.Credentials{Token: token, User: user.Clone()}
	return nil
}

// UpdateToken rewrites the token, preserving the profile
func (m *MockCredentialStore) UpdateToken(token string) error {
	if m.UpdateTokenFunc != nil {
		return m.UpdateTokenFunc(token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.creds == nil {
		return domain.ErrNoCredentials
	}
	m.creds.Token = token
	return nil
}

// Load returns the in-memory record
func (m *MockCredentialStore) Load() (*domain.Credentials, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.creds == nil || m.creds.Token == "" {
		return nil, domain.ErrNoCredentials
	}
	cp := *m.creds
	cp.User = m.creds.User.Clone()
	return &cp, nil
}

// Clear drops the record
func (m *MockCredentialStore) Clear() error {
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}

// IsPresent reports whether a token is held
func (m *MockCredentialStore) IsPresent() bool {
	if m.IsPresentFunc != nil {
		return m.IsPresentFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds != nil && m.creds.Token != ""
}
