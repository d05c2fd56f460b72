package domain

import "context"

// CredentialStore defines durable persistence of the session credentials.
// Save and Clear act on a single serialized record so a partially written
// token-without-profile state cannot occur.
type CredentialStore interface {
	Save(token string, user *UserProfile) error
	UpdateToken(token string) error
	Load() (*Credentials, error)
	Clear() error
	IsPresent() bool
}

// SessionHandle is the read side of the session, handed to consumers that
// must never mutate it (the route guard, UI surfaces).
type SessionHandle interface {
	Snapshot() Session
	HasRole(required ...Role) bool
}

// SessionManager owns all session mutation. Operations report expected
// failures as returned errors plus a human-readable message on the
// session; they never panic past their own boundary.
type SessionManager interface {
	SessionHandle
	RestoreOnStartup()
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, reg *Registration) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, patch map[string]any) (*UserProfile, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	Invalidate(reason error)
}

// AuthResponse is the flat shape returned by the login and registration
// endpoints: a token alongside the profile fields. Token may be empty on
// registration.
type AuthResponse struct {
	Token        string `json:"token"`
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         Role   `json:"role"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Address      string `json:"address,omitempty"`
}

// Profile extracts the identity snapshot from the response.
func (r *AuthResponse) Profile() *UserProfile {
	return &UserProfile{
		ID:           r.ID,
		Email:        r.Email,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Role:         r.Role,
		PhoneNumber:  r.PhoneNumber,
		ProfileImage: r.ProfileImage,
		Address:      r.Address,
	}
}

// AuthAPI defines the remote authentication endpoints.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Register(ctx context.Context, reg *Registration) (*AuthResponse, error)
	Logout(ctx context.Context) error
}

// UserAPI defines the remote profile endpoints. UpdateProfile returns the
// raw server-echoed fields so the caller can merge them field-wise.
type UserAPI interface {
	Me(ctx context.Context) (*UserProfile, error)
	UpdateProfile(ctx context.Context, id string, patch map[string]any) (map[string]any, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error
}

// SessionInvalidator is what the refresh interceptor calls when a refresh
// attempt fails terminally and the session must be torn down.
type SessionInvalidator interface {
	Invalidate(reason error)
}
