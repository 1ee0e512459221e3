// Package session persists login sessions in Redis: opaque token -> user
// id with a rolling TTL.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campushare/notehub/internal/db"
)

// TTL is the session lifetime.
const TTL = 24 * time.Hour

const keyPrefix = "notehub:session:"

// Store manages sessions over the Redis client.
type Store struct {
	rdb *db.Redis
}

// New creates a session store.
func New(rdb *db.Redis) *Store {
	return &Store{rdb: rdb}
}

// Create issues a new session token for the user.
func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.SetWithTTL(ctx, keyPrefix+token, userID, TTL); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Get resolves a session token to a user id, or "" when the session is
// missing or expired.
func (s *Store) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.Get(ctx, keyPrefix+token)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get session: %w", err)
	}
	return userID, nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, keyPrefix+token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
