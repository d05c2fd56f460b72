package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
	"github.com/Rahuly1606/Property-management-System-sub000/internal/mocks"
)

func tenantResponse() *domain.AuthResponse {
	return &domain.AuthResponse{
		Token:     "tok-tenant",
		ID:        "3",
		Email:     "tenant@example.com",
		FirstName: "Tenant",
		LastName:  "Test",
		Role:      domain.RoleTenant,
	}
}

func newTestManager() (*SessionService, *mocks.MockCredentialStore, *mocks.MockAuthAPI, *mocks.MockUserAPI) {
	store := mocks.NewMockCredentialStore()
	authAPI := mocks.NewMockAuthAPI()
	userAPI := mocks.NewMockUserAPI()
	return NewSessionService(store, authAPI, userAPI), store, authAPI, userAPI
}

func assertInvariant(t *testing.T, snap domain.Session) {
	t.Helper()
	if snap.Loading {
		return
	}
	if (snap.User != nil) != (snap.Token != "") {
		t.Errorf("invariant violated: user=%v token=%q", snap.User, snap.Token)
	}
}

func TestSessionService_RestoreOnStartup(t *testing.T) {
	tests := []struct {
		name          string
		setupStore    func(*mocks.MockCredentialStore)
		expectUser    bool
		expectedEmail string
	}{
		{
			name:       "no prior session stays empty",
			setupStore: func(store *mocks.MockCredentialStore) {},
			expectUser: false,
		},
		{
			name: "persisted session restored without network",
			setupStore: func(store *mocks.MockCredentialStore) {
				store.Save("tok", &domain.UserProfile{ID: "3", Email: "tenant@example.com", Role: domain.RoleTenant})
			},
			expectUser:    true,
			expectedEmail: "tenant@example.com",
		},
		{
			name: "corrupt record degrades to empty session",
			setupStore: func(store *mocks.MockCredentialStore) {
				store.LoadFunc = func() (*domain.Credentials, error) {
					return nil, fmt.Errorf("%w: bad json", domain.ErrCorruptCredentials)
				}
			},
			expectUser: false,
		},
		{
			name: "record without profile degrades to empty session",
			setupStore: func(store *mocks.MockCredentialStore) {
				store.LoadFunc = func() (*domain.Credentials, error) {
					return &domain.Credentials{Token: "tok"}, nil
				}
			},
			expectUser: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, store, _, _ := newTestManager()
			tt.setupStore(store)

			mgr.RestoreOnStartup()

			snap := mgr.Snapshot()
			if snap.Loading {
				t.Error("loading must be false after restore")
			}
			assertInvariant(t, snap)
			if tt.expectUser {
				if snap.User == nil || snap.User.Email != tt.expectedEmail {
					t.Errorf("expected restored user %s, got %+v", tt.expectedEmail, snap.User)
				}
			} else if snap.User != nil {
				t.Errorf("expected empty session, got %+v", snap.User)
			}
		})
	}
}

func TestSessionService_Login(t *testing.T) {
	tests := []struct {
		name           string
		setupAuth      func(*mocks.MockAuthAPI)
		expectErr      bool
		expectUser     bool
		expectedError  string
		expectSentinel error
	}{
		{
			name: "successful login populates session and store",
			setupAuth: func(api *mocks.MockAuthAPI) {
				api.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
					return tenantResponse(), nil
				}
			},
			expectUser: true,
		},
		{
			name: "invalid credentials surface server message",
			setupAuth: func(api *mocks.MockAuthAPI) {
				api.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
					return nil, &domain.APIError{Status: 401, Message: "Invalid email or password"}
				}
			},
			expectErr:      true,
			expectedError:  "Invalid email or password",
			expectSentinel: domain.ErrInvalidCredentials,
		},
		{
			name: "network failure surfaces generic message",
			setupAuth: func(api *mocks.MockAuthAPI) {
				api.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
					return nil, fmt.Errorf("%w: connection refused", domain.ErrNetworkUnavailable)
				}
			},
			expectErr:      true,
			expectedError:  "Network error. Please check your connection and try again.",
			expectSentinel: domain.ErrNetworkUnavailable,
		},
		{
			name: "malformed response is a failure",
			setupAuth: func(api *mocks.MockAuthAPI) {
				api.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
					return &domain.AuthResponse{ID: "3", Email: "t@example.com", Role: domain.RoleTenant}, nil
				}
			},
			expectErr:     true,
			expectedError: "Login failed: invalid response from server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, store, authAPI, _ := newTestManager()
			tt.setupAuth(authAPI)

			err := mgr.Login(context.Background(), "tenant@example.com", "password")

			snap := mgr.Snapshot()
			assertInvariant(t, snap)
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if snap.User != nil {
					t.Error("failed login must not mutate the session")
				}
				if store.IsPresent() {
					t.Error("failed login must not persist credentials")
				}
				if snap.Err != tt.expectedError {
					t.Errorf("expected error message %q, got %q", tt.expectedError, snap.Err)
				}
				if tt.expectSentinel != nil && !errors.Is(err, tt.expectSentinel) {
					t.Errorf("expected %v in chain, got %v", tt.expectSentinel, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if snap.User == nil || snap.User.Role != domain.RoleTenant {
				t.Fatalf("expected tenant session, got %+v", snap.User)
			}
			if snap.Token != "tok-tenant" {
				t.Errorf("expected token in session, got %q", snap.Token)
			}
			if snap.Err != "" {
				t.Errorf("expected no error message, got %q", snap.Err)
			}
			creds, err := store.Load()
			if err != nil || creds.Token != "tok-tenant" {
				t.Errorf("expected persisted credentials, got %+v err=%v", creds, err)
			}
		})
	}
}

func TestSessionService_Register(t *testing.T) {
	t.Run("token in response auto-logs-in", func(t *testing.T) {
		mgr, store, _, _ := newTestManager()

		reg := &domain.Registration{Email: "new@example.com", FirstName: "New", LastName: "User", Role: domain.RoleLandlord}
		if err := mgr.Register(context.Background(), reg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snap := mgr.Snapshot()
		assertInvariant(t, snap)
		if snap.User == nil || snap.User.Role != domain.RoleLandlord {
			t.Fatalf("expected landlord session, got %+v", snap.User)
		}
		if !store.IsPresent() {
			t.Error("expected persisted credentials after registration")
		}
	})

	t.Run("tokenless response leaves session empty", func(t *testing.T) {
		mgr, store, authAPI, _ := newTestManager()
		authAPI.RegisterFunc = func(ctx context.Context, reg *domain.Registration) (*domain.AuthResponse, error) {
			return &domain.AuthResponse{ID: "4", Email: reg.Email, Role: domain.RoleTenant}, nil
		}

		reg := &domain.Registration{Email: "new@example.com", Role: domain.RoleTenant}
		if err := mgr.Register(context.Background(), reg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snap := mgr.Snapshot()
		assertInvariant(t, snap)
		if snap.User != nil {
			t.Errorf("expected empty session, got %+v", snap.User)
		}
		if store.IsPresent() {
			t.Error("expected no persisted credentials")
		}
	})

	t.Run("server failure surfaces message", func(t *testing.T) {
		mgr, _, authAPI, _ := newTestManager()
		authAPI.RegisterFunc = func(ctx context.Context, reg *domain.Registration) (*domain.AuthResponse, error) {
			return nil, &domain.APIError{Status: 409, Message: "Email already registered"}
		}

		err := mgr.Register(context.Background(), &domain.Registration{Email: "dup@example.com"})
		if err == nil {
			t.Fatal("expected error")
		}
		if snap := mgr.Snapshot(); snap.Err != "Email already registered" {
			t.Errorf("expected server message, got %q", snap.Err)
		}
	})
}

func TestSessionService_LogoutAlwaysClears(t *testing.T) {
	tests := []struct {
		name      string
		remoteErr error
	}{
		{name: "remote logout succeeds"},
		{name: "remote logout fails", remoteErr: errors.New("logout endpoint down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, store, authAPI, _ := newTestManager()
			if err := mgr.Login(context.Background(), "tenant@example.com", "password"); err != nil {
				t.Fatalf("login: %v", err)
			}
			authAPI.LogoutFunc = func(ctx context.Context) error { return tt.remoteErr }

			err := mgr.Logout(context.Background())
			if tt.remoteErr != nil && err == nil {
				t.Error("remote failure should be reported")
			}
			if tt.remoteErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			snap := mgr.Snapshot()
			assertInvariant(t, snap)
			if snap.User != nil || snap.Token != "" {
				t.Error("logout must clear the session regardless of remote outcome")
			}
			if store.IsPresent() {
				t.Error("logout must clear persisted credentials regardless of remote outcome")
			}
		})
	}
}

func TestSessionService_UpdateProfile(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		mgr, _, _, _ := newTestManager()
		_, err := mgr.UpdateProfile(context.Background(), map[string]any{"phoneNumber": "555-0100"})
		if !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("merges echoed fields and preserves the rest", func(t *testing.T) {
		mgr, store, _, userAPI := newTestManager()
		if err := mgr.Login(context.Background(), "tenant@example.com", "password"); err != nil {
			t.Fatalf("login: %v", err)
		}

		var patchedID string
		userAPI.UpdateProfileFunc = func(ctx context.Context, id string, patch map[string]any) (map[string]any, error) {
			patchedID = id
			return map[string]any{"phoneNumber": "555-0100"}, nil
		}

		updated, err := mgr.UpdateProfile(context.Background(), map[string]any{"phoneNumber": "555-0100"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if patchedID != "3" {
			t.Errorf("patch must be scoped to the current user id, got %q", patchedID)
		}
		if updated.PhoneNumber != "555-0100" {
			t.Errorf("expected merged phone number, got %q", updated.PhoneNumber)
		}
		if updated.Email != "tenant@example.com" || updated.Role != domain.RoleTenant {
			t.Errorf("unechoed fields must be preserved, got email=%q role=%q", updated.Email, updated.Role)
		}

		snap := mgr.Snapshot()
		assertInvariant(t, snap)
		if snap.User.PhoneNumber != "555-0100" {
			t.Error("merged profile must be visible in the session")
		}
		creds, err := store.Load()
		if err != nil || creds.User.PhoneNumber != "555-0100" {
			t.Errorf("merged profile must be persisted, got %+v err=%v", creds, err)
		}
	})

	t.Run("role in response updates the session role", func(t *testing.T) {
		mgr, _, _, userAPI := newTestManager()
		if err := mgr.Login(context.Background(), "tenant@example.com", "password"); err != nil {
			t.Fatalf("login: %v", err)
		}
		userAPI.UpdateProfileFunc = func(ctx context.Context, id string, patch map[string]any) (map[string]any, error) {
			return map[string]any{"role": "LANDLORD"}, nil
		}

		updated, err := mgr.UpdateProfile(context.Background(), map[string]any{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Role != domain.RoleLandlord {
			t.Errorf("expected role update, got %q", updated.Role)
		}
	})

	t.Run("server failure leaves profile untouched", func(t *testing.T) {
		mgr, _, _, userAPI := newTestManager()
		if err := mgr.Login(context.Background(), "tenant@example.com", "password"); err != nil {
			t.Fatalf("login: %v", err)
		}
		userAPI.UpdateProfileFunc = func(ctx context.Context, id string, patch map[string]any) (map[string]any, error) {
			return nil, &domain.APIError{Status: 422, Message: "Phone number is invalid"}
		}

		if _, err := mgr.UpdateProfile(context.Background(), map[string]any{"phoneNumber": "nope"}); err == nil {
			t.Fatal("expected error")
		}
		snap := mgr.Snapshot()
		if snap.User.PhoneNumber != "" {
			t.Error("failed update must not mutate the profile")
		}
		if snap.Err != "Phone number is invalid" {
			t.Errorf("expected server message, got %q", snap.Err)
		}
	})
}

func TestSessionService_ChangePassword(t *testing.T) {
	mgr, _, _, userAPI := newTestManager()

	if err := mgr.ChangePassword(context.Background(), "old", "new"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	if err := mgr.Login(context.Background(), "tenant@example.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}
	var gotID string
	userAPI.ChangePasswordFunc = func(ctx context.Context, id, current, newPw string) error {
		gotID = id
		return nil
	}
	if err := mgr.ChangePassword(context.Background(), "old", "new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "3" {
		t.Errorf("password change must be scoped to the current user id, got %q", gotID)
	}
}

func TestSessionService_HasRole(t *testing.T) {
	mgr, _, _, _ := newTestManager()

	if mgr.HasRole(domain.RoleTenant) {
		t.Error("unauthenticated session must have no roles")
	}

	if err := mgr.Login(context.Background(), "tenant@example.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}

	tests := []struct {
		name     string
		required []domain.Role
		expected bool
	}{
		{name: "no roles means any authenticated", required: nil, expected: true},
		{name: "matching single role", required: []domain.Role{domain.RoleTenant}, expected: true},
		{name: "non-matching single role", required: []domain.Role{domain.RoleLandlord}, expected: false},
		{name: "membership in a set", required: []domain.Role{domain.RoleLandlord, domain.RoleTenant}, expected: true},
		{name: "absent from a set", required: []domain.Role{domain.RoleLandlord, domain.RoleAdmin}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mgr.HasRole(tt.required...); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSessionService_Invalidate(t *testing.T) {
	mgr, store, _, _ := newTestManager()
	if err := mgr.Login(context.Background(), "tenant@example.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}

	mgr.Invalidate(domain.ErrRefreshFailed)

	snap := mgr.Snapshot()
	assertInvariant(t, snap)
	if snap.User != nil || snap.Token != "" {
		t.Error("invalidate must clear the session")
	}
	if store.IsPresent() {
		t.Error("invalidate must clear persisted credentials")
	}
	if snap.Err == "" {
		t.Error("invalidate must surface a message for the UI")
	}
}

func TestSessionService_StaleLoginCompletionDiscarded(t *testing.T) {
	mgr, store, authAPI, _ := newTestManager()

	// The session is torn down while the login is still in flight; the
	// login's completion must not resurrect it.
	authAPI.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
		mgr.Invalidate(domain.ErrRefreshFailed)
		return tenantResponse(), nil
	}

	if err := mgr.Login(context.Background(), "tenant@example.com", "password"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := mgr.Snapshot()
	assertInvariant(t, snap)
	if snap.User != nil || snap.Token != "" {
		t.Error("stale login completion must be discarded after invalidation")
	}
	if store.IsPresent() {
		t.Error("stale login completion must not persist credentials")
	}
}
