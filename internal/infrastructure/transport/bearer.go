// Package transport carries the outbound HTTP concerns of the client: it
// attaches the bearer credential to every request and makes a transient
// credential expiry invisible to callers for exactly one retry.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

const refreshPath = "/auth/refresh-token"

// AuthTransport is an http.RoundTripper that injects the current token and
// retries a request that failed with 401 at most once, after obtaining a
// fresh token from the refresh endpoint.
type AuthTransport struct {
	base    http.RoundTripper
	store   domain.CredentialStore
	baseURL string

	// refreshClient carries the ambient session cookie jar; the refresh
	// request never carries the expired bearer token.
	refreshClient *http.Client

	// invalidate tears down the session when a refresh fails terminally.
	// Set after construction to break the transport/manager cycle.
	invalidate func(reason error)

	mu sync.Mutex
}

// New creates the transport. base may be nil, in which case
// http.DefaultTransport is used.
func New(baseURL string, store domain.CredentialStore, base http.RoundTripper, refreshClient *http.Client) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if refreshClient == nil {
		refreshClient = &http.Client{}
	}
	return &AuthTransport{
		base:          base,
		store:         store,
		baseURL:       strings.TrimRight(baseURL, "/"),
		refreshClient: refreshClient,
	}
}

// SetInvalidator wires the session teardown hook.
func (t *AuthTransport) SetInvalidator(inv domain.SessionInvalidator) {
	t.invalidate = inv.Invalidate
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.currentToken()

	attempt := cloneRequest(req)
	if token != "" {
		attempt.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(attempt)
	if err != nil {
		return nil, err
	}

	// Only a rejected bearer credential triggers a refresh. A 401 from
	// the auth endpoints (a failed login, a bad registration) is the
	// caller's to handle, even when a stale token rode along.
	if resp.StatusCode != http.StatusUnauthorized || token == "" || isAuthEndpoint(req.URL.Path) {
		return resp, nil
	}

	// The original body is gone; replay needs GetBody.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	newToken, refreshErr := t.refresh(token)
	if refreshErr != nil {
		drain(resp)
		return nil, refreshErr
	}
	drain(resp)

	retry := cloneRequest(req)
	retry.Header.Set("Authorization", "Bearer "+newToken)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}
		retry.Body = body
	}

	// A second 401 on the replay is terminal for this request; it is
	// propagated rather than looping into another refresh.
	return t.base.RoundTrip(retry)
}

// refresh obtains a new token. failedToken is the token that was just
// rejected; if another in-flight request already refreshed, the stored
// token differs and is reused without a second round-trip.
func (t *AuthTransport) refresh(failedToken string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current := t.currentToken(); current != "" && current != failedToken {
		return current, nil
	}

	req, err := http.NewRequest(http.MethodPost, t.baseURL+refreshPath, strings.NewReader("{}"))
	if err != nil {
		return "", t.fail(fmt.Errorf("%w: %v", domain.ErrRefreshFailed, err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.refreshClient.Do(req)
	if err != nil {
		return "", t.fail(fmt.Errorf("%w: %v", domain.ErrRefreshFailed, err))
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", t.fail(fmt.Errorf("%w: refresh endpoint returned %d", domain.ErrRefreshFailed, resp.StatusCode))
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Token == "" {
		return "", t.fail(fmt.Errorf("%w: malformed refresh response", domain.ErrRefreshFailed))
	}

	if err := t.store.UpdateToken(body.Token); err != nil {
		return "", t.fail(fmt.Errorf("%w: %v", domain.ErrRefreshFailed, err))
	}

	log.Printf("%s: timestamp=%s", domain.TokenRefreshedEvent, time.Now().UTC().Format(time.RFC3339))
	return body.Token, nil
}

// fail tears the session down: the credential is unrecoverable, so
// continuing to issue requests with it would cascade failures silently.
func (t *AuthTransport) fail(err error) error {
	if clearErr := t.store.Clear(); clearErr != nil {
		log.Printf("SESSION_INVALIDATED: credential clear failed: %v", clearErr)
	}
	if t.invalidate != nil {
		t.invalidate(err)
	}
	return err
}

func (t *AuthTransport) currentToken() string {
	creds, err := t.store.Load()
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredentials) {
			log.Printf("SESSION_RESTORE_SKIPPED: credential load failed: %v", err)
		}
		return ""
	}
	return creds.Token
}

func isAuthEndpoint(path string) bool {
	return strings.Contains(path, "/auth/")
}

func cloneRequest(req *http.Request) *http.Request {
	clone := req.Clone(req.Context())
	return clone
}

func drain(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		resp.Body.Close()
	}
}
