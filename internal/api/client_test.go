package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

func TestClientDo_DecodesServerMessage(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "message field",
			status:     http.StatusUnauthorized,
			body:       `{"message":"Invalid email or password"}`,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid email or password",
		},
		{
			name:       "error field fallback",
			status:     http.StatusConflict,
			body:       `{"error":"Email already registered"}`,
			wantStatus: http.StatusConflict,
			wantMsg:    "Email already registered",
		},
		{
			name:       "unparseable body",
			status:     http.StatusInternalServerError,
			body:       `<html>boom</html>`,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, srv.Client())
			err := c.get(context.Background(), "/anything", nil)

			apiErr, ok := domain.AsAPIError(err)
			if !ok {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClientDo_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	c := NewClient(srv.URL, http.DefaultClient)
	err := c.get(context.Background(), "/properties", nil)
	if !errors.Is(err, domain.ErrNetworkUnavailable) {
		t.Fatalf("expected ErrNetworkUnavailable, got %v", err)
	}
}

func TestClientDo_SendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	var out map[string]string
	err := c.post(context.Background(), "/auth/login", map[string]string{"email": "a@b.c"}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q, want application/json", gotContentType)
	}
	if gotBody["email"] != "a@b.c" {
		t.Errorf("body email = %q", gotBody["email"])
	}
	if out["ok"] != "yes" {
		t.Errorf("decoded response = %v", out)
	}
}

func TestClientDo_QueryParameters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("currentPassword")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	userAPI := NewUserAPI(NewClient(srv.URL, srv.Client()))
	if err := userAPI.ChangePassword(context.Background(), "7", "old-secret", "new-secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "old-secret" {
		t.Errorf("currentPassword query = %q", gotQuery)
	}
}

func TestAuthAPI_LoginShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"token": "tok-1", "id": "42", "email": "t@example.com",
			"firstName": "Tess", "lastName": "Tenant", "role": "TENANT",
		})
	}))
	defer srv.Close()

	authAPI := NewAuthAPI(NewClient(srv.URL, srv.Client()))
	resp, err := authAPI.Login(context.Background(), "t@example.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token != "tok-1" {
		t.Errorf("token = %q", resp.Token)
	}
	profile := resp.Profile()
	if profile.Role != domain.RoleTenant || profile.ID != "42" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestAuthAPI_LoginRejectsUnknownRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1", "id": "1", "role": "SUPERADMIN"})
	}))
	defer srv.Close()

	authAPI := NewAuthAPI(NewClient(srv.URL, srv.Client()))
	_, err := authAPI.Login(context.Background(), "x@y.z", "pw")
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
