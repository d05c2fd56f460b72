// Package credstore persists the session credentials across process
// restarts. The token and profile are written as one serialized record so
// a reader can never observe a token without its profile.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// FileStore implements domain.CredentialStore on a single JSON file.
// Writes go through a temp file and rename so another process sharing the
// file never sees a torn record.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the given path. The parent
// directory is created on first save, not here.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save implements domain.CredentialStore. It overwrites any previous
// record.
func (s *FileStore) Save(token string, user *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(&domain.Credentials{
		Token:   token,
		User:    user.Clone(),
		SavedAt: time.Now().UTC(),
	})
}

// UpdateToken implements domain.CredentialStore. It rewrites the record
// with a new token, preserving the persisted profile. Used by the refresh
// interceptor after a successful token refresh.
func (s *FileStore) UpdateToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.read()
	if err != nil {
		return err
	}
	creds.Token = token
	creds.SavedAt = time.Now().UTC()
	return s.write(creds)
}

// Load implements domain.CredentialStore. A record without a token counts
// as absent regardless of whether a profile is present.
func (s *FileStore) Load() (*domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Clear implements domain.CredentialStore. Clearing an absent record is
// not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// IsPresent implements domain.CredentialStore.
func (s *FileStore) IsPresent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.read()
	return err == nil && creds.Token != ""
}

func (s *FileStore) read() (*domain.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoCredentials
		}
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptCredentials, err)
	}
	if creds.Token == "" {
		return nil, domain.ErrNoCredentials
	}
	return &creds, nil
}

func (s *FileStore) write(creds *domain.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("failed to create temp credentials file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close credentials file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to persist credentials: %w", err)
	}
	return nil
}
