package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// refreshSession is the record behind one refresh cookie.
type refreshSession struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore keeps refresh sessions in Redis, keyed by the opaque ID
// carried in the httpOnly cookie.
type SessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "refresh_session:",
		ttl:    ttl,
	}
}

func (s *SessionStore) Create(ctx context.Context, sessionID, userID string) error {
	data, err := json.Marshal(refreshSession{UserID: userID, CreatedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+sessionID, data, s.ttl).Err()
}

func (s *SessionStore) Find(ctx context.Context, sessionID string) (string, error) {
	data, err := s.client.Get(ctx, s.prefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	var sess refreshSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return "", fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return sess.UserID, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}
