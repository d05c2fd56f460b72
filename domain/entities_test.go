package domain

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Role
		expectErr bool
	}{
		{name: "admin", input: "ADMIN", expected: RoleAdmin},
		{name: "landlord", input: "LANDLORD", expected: RoleLandlord},
		{name: "tenant", input: "TENANT", expected: RoleTenant},
		{name: "lowercase rejected", input: "tenant", expectErr: true},
		{name: "empty rejected", input: "", expectErr: true},
		{name: "unknown rejected", input: "MANAGER", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := ParseRole(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q, got role %q", tt.input, role)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if role != tt.expected {
				t.Errorf("expected role %q, got %q", tt.expected, role)
			}
		})
	}
}

func TestRole_UnmarshalJSON(t *testing.T) {
	var p UserProfile
	if err := json.Unmarshal([]byte(`{"id":"3","email":"t@example.com","role":"TENANT"}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Role != RoleTenant {
		t.Errorf("expected role TENANT, got %q", p.Role)
	}

	if err := json.Unmarshal([]byte(`{"id":"3","role":"SUPERUSER"}`), &p); err == nil {
		t.Error("expected error for role outside the closed set")
	}
}

func TestSession_Authenticated(t *testing.T) {
	user := &UserProfile{ID: "3", Email: "tenant@example.com", Role: RoleTenant}

	tests := []struct {
		name     string
		session  Session
		expected bool
	}{
		{name: "empty session", session: Session{}, expected: false},
		{name: "loading excludes decision", session: Session{Token: "tok", User: user, Loading: true}, expected: false},
		{name: "populated session", session: Session{Token: "tok", User: user}, expected: true},
		{name: "token without user", session: Session{Token: "tok"}, expected: false},
		{name: "user without token", session: Session{User: user}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Authenticated(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestUserProfile_Clone(t *testing.T) {
	orig := &UserProfile{ID: "2", Email: "l@example.com", Role: RoleLandlord}
	cp := orig.Clone()
	cp.Email = "changed@example.com"
	if orig.Email != "l@example.com" {
		t.Error("clone mutation leaked into the original")
	}

	var nilProfile *UserProfile
	if nilProfile.Clone() != nil {
		t.Error("expected nil clone of nil profile")
	}
}
