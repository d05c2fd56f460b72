package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// ErrMalformedResponse is returned when the server answers 2xx but the
// body does not carry a usable token or profile.
var ErrMalformedResponse = errors.New("invalid response from server")

// SessionService implements domain.SessionManager. It is the only
// component that mutates the session; everything else reads snapshots.
//
// Mutating operations are serialized through a single-slot gate so at most
// one authentication mutation is in flight at a time. A generation counter
// discards a completion that raced a teardown (e.g. a login that finishes
// after the refresh interceptor invalidated the session).
type SessionService struct {
	store   domain.CredentialStore
	authAPI domain.AuthAPI
	userAPI domain.UserAPI

	opMu sync.Mutex

	mu   sync.RWMutex
	sess domain.Session
	gen  uint64
}

// NewSessionService creates a new session manager.
func NewSessionService(store domain.CredentialStore, authAPI domain.AuthAPI, userAPI domain.UserAPI) *SessionService {
	return &SessionService{
		store:   store,
		authAPI: authAPI,
		userAPI: userAPI,
	}
}

// Snapshot implements domain.SessionHandle.
func (s *SessionService) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.sess
	snap.User = s.sess.User.Clone()
	return snap
}

// HasRole implements domain.SessionHandle. With no roles given it reduces
// to an authenticated check; otherwise it is a membership test against the
// allow-list.
func (s *SessionService) HasRole(required ...domain.Role) bool {
	snap := s.Snapshot()
	if !snap.Authenticated() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if snap.User.Role == r {
			return true
		}
	}
	return false
}

// RestoreOnStartup implements domain.SessionManager. The persisted profile
// is trusted as-is: no network round-trip happens at boot, and a token the
// server has since revoked surfaces on the first authenticated request.
// Restore never fails the startup sequence; anything unexpected degrades
// to an empty session plus a logged diagnostic.
func (s *SessionService) RestoreOnStartup() {
	s.setLoading(true)
	defer s.setLoading(false)

	creds, err := s.store.Load()
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredentials) {
			log.Printf("%s: restore failed, starting empty: %v", domain.SessionRestoreSkipEvent, err)
		}
		return
	}
	if creds.User == nil || !creds.User.Role.Valid() {
		log.Printf("%s: persisted profile unusable, starting empty", domain.SessionRestoreSkipEvent)
		return
	}

	s.mu.Lock()
	s.sess.Token = creds.Token
	s.sess.User = creds.User.Clone()
	s.mu.Unlock()

	log.Printf("%s: user_id=%s role=%s timestamp=%s",
		domain.SessionRestoredEvent, creds.User.ID, creds.User.Role, time.Now().UTC().Format(time.RFC3339))
}

// Login implements domain.SessionManager.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	gen := s.beginOp()
	defer s.endOp()

	resp, err := s.authAPI.Login(ctx, email, password)
	if err != nil {
		if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Status == http.StatusUnauthorized {
			err = fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
		}
		s.setError(domain.FailureMessage(err, "Invalid email or password"))
		log.Printf("%s: email=%s error=%v", domain.UserLoginFailureEvent, email, err)
		return err
	}
	if resp.Token == "" || !resp.Role.Valid() {
		s.setError("Login failed: invalid response from server")
		return ErrMalformedResponse
	}

	committed, err := s.commit(gen, resp.Token, resp.Profile())
	if err != nil {
		return err
	}
	if committed {
		log.Printf("%s: user_id=%s email=%s role=%s timestamp=%s",
			domain.UserLoginEvent, resp.ID, resp.Email, resp.Role, time.Now().UTC().Format(time.RFC3339))
	}
	return nil
}

// Register implements domain.SessionManager. A response carrying a token
// behaves exactly like a login success (auto-login after registration); a
// tokenless response reports success and leaves the session empty.
func (s *SessionService) Register(ctx context.Context, reg *domain.Registration) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	gen := s.beginOp()
	defer s.endOp()

	resp, err := s.authAPI.Register(ctx, reg)
	if err != nil {
		s.setError(domain.FailureMessage(err, "Registration failed"))
		return err
	}

	if resp.Token == "" {
		log.Printf("%s: email=%s (no token issued)", domain.UserRegisteredEvent, reg.Email)
		return nil
	}
	if !resp.Role.Valid() {
		s.setError("Registration failed: invalid response from server")
		return ErrMalformedResponse
	}

	committed, err := s.commit(gen, resp.Token, resp.Profile())
	if err != nil {
		return err
	}
	if committed {
		log.Printf("%s: user_id=%s email=%s role=%s timestamp=%s",
			domain.UserRegisteredEvent, resp.ID, resp.Email, resp.Role, time.Now().UTC().Format(time.RFC3339))
	}
	return nil
}

// Logout implements domain.SessionManager. The local state is cleared
// before the remote call: the user's intent to leave the authenticated
// state is honored locally regardless of the remote outcome, and a remote
// failure never resurrects the session.
func (s *SessionService) Logout(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	var userID string
	s.mu.Lock()
	if s.sess.User != nil {
		userID = s.sess.User.ID
	}
	s.gen++
	s.sess.Token = ""
	s.sess.User = nil
	s.sess.Err = ""
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		log.Printf("%s: credential clear failed: %v", domain.UserLogoutEvent, err)
	}

	if err := s.authAPI.Logout(ctx); err != nil {
		log.Printf("%s: user_id=%s remote logout failed: %v", domain.UserLogoutEvent, userID, err)
		return err
	}

	log.Printf("%s: user_id=%s timestamp=%s",
		domain.UserLogoutEvent, userID, time.Now().UTC().Format(time.RFC3339))
	return nil
}

// UpdateProfile implements domain.SessionManager. Server-returned fields
// win; locally-held fields the server did not echo are preserved. A role
// present in the response updates the session's role.
func (s *SessionService) UpdateProfile(ctx context.Context, patch map[string]any) (*domain.UserProfile, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	gen := s.beginOp()
	defer s.endOp()

	s.mu.RLock()
	current := s.sess.User.Clone()
	token := s.sess.Token
	s.mu.RUnlock()
	if current == nil || current.ID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	echoed, err := s.userAPI.UpdateProfile(ctx, current.ID, patch)
	if err != nil {
		s.setError(domain.FailureMessage(err, "Failed to update profile"))
		return nil, err
	}

	merged, err := mergeProfile(current, echoed)
	if err != nil {
		s.setError("Failed to update profile")
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	committed, err := s.commit(gen, token, merged)
	if err != nil {
		return nil, err
	}
	if committed {
		log.Printf("%s: user_id=%s timestamp=%s",
			domain.ProfileUpdatedEvent, merged.ID, time.Now().UTC().Format(time.RFC3339))
	}
	return merged.Clone(), nil
}

// ChangePassword implements domain.SessionManager.
func (s *SessionService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	s.mu.RLock()
	var userID string
	if s.sess.User != nil {
		userID = s.sess.User.ID
	}
	s.mu.RUnlock()
	if userID == "" {
		return domain.ErrNotAuthenticated
	}

	if err := s.userAPI.ChangePassword(ctx, userID, currentPassword, newPassword); err != nil {
		s.setError(domain.FailureMessage(err, "Failed to change password"))
		return err
	}
	return nil
}

// Invalidate implements domain.SessionInvalidator. Called by the refresh
// interceptor when the credential is unrecoverable; the session is torn
// down and any in-flight mutation's completion is discarded.
func (s *SessionService) Invalidate(reason error) {
	s.mu.Lock()
	s.gen++
	s.sess.Token = ""
	s.sess.User = nil
	s.sess.Err = domain.FailureMessage(reason, "Your session has expired. Please log in again.")
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		log.Printf("%s: credential clear failed: %v", domain.SessionInvalidatedEvent, err)
	}

	log.Printf("%s: reason=%v timestamp=%s",
		domain.SessionInvalidatedEvent, reason, time.Now().UTC().Format(time.RFC3339))
}

// beginOp marks the session loading, clears the previous error, and
// returns the generation the operation belongs to.
func (s *SessionService) beginOp() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.Loading = true
	s.sess.Err = ""
	return s.gen
}

func (s *SessionService) endOp() {
	s.setLoading(false)
}

// commit persists and publishes a populated session, unless the session
// was torn down while the operation was in flight, in which case the
// stale completion is discarded.
func (s *SessionService) commit(gen uint64, token string, user *domain.UserProfile) (bool, error) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		log.Printf("%s: stale completion discarded for user_id=%s", domain.SessionInvalidatedEvent, user.ID)
		return false, nil
	}
	s.sess.Token = token
	s.sess.User = user.Clone()
	s.sess.Err = ""
	s.mu.Unlock()

	if err := s.store.Save(token, user); err != nil {
		return false, fmt.Errorf("failed to persist credentials: %w", err)
	}
	return true, nil
}

func (s *SessionService) setLoading(v bool) {
	s.mu.Lock()
	s.sess.Loading = v
	s.mu.Unlock()
}

func (s *SessionService) setError(msg string) {
	s.mu.Lock()
	s.sess.Err = msg
	s.mu.Unlock()
}

// mergeProfile overlays the server-echoed fields onto the current profile
// through their JSON representations, so only fields the server actually
// returned are replaced.
func mergeProfile(current *domain.UserProfile, echoed map[string]any) (*domain.UserProfile, error) {
	base, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for k, v := range echoed {
		if v == nil {
			continue
		}
		m[k] = v
	}
	combined, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var merged domain.UserProfile
	if err := json.Unmarshal(combined, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}
