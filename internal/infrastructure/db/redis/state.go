package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const stateTTL = 10 * time.Minute

// StateStore issues and consumes single-use federated-login state
// nonces backed by Redis.
// Key format: oauthstate:<nonce>
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Issue generates a random state nonce and records it with a short TTL.
func (s *StateStore) Issue(ctx context.Context) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("state nonce: %w", err)
	}
	state := hex.EncodeToString(buf)

	if err := s.client.Set(ctx, s.key(state), "1", stateTTL).Err(); err != nil {
		return "", fmt.Errorf("state store: %w", err)
	}
	return state, nil
}

// Consume atomically checks and deletes a state nonce. It reports false
// for unknown, expired or already-consumed states.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	_, err := s.client.GetDel(ctx, s.key(state)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("state consume: %w", err)
	}
	return true, nil
}

func (s *StateStore) key(state string) string {
	return "oauthstate:" + state
}
