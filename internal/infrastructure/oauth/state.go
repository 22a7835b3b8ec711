package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/alumni-network/pkg/helpers"
)

// StateTTL bounds how long a pending OAuth round-trip stays valid.
const StateTTL = 10 * time.Minute

var ErrStateInvalid = errors.New("oauth state invalid or expired")

// StateStore keeps one-shot CSRF state nonces in Redis.
type StateStore struct {
	RDB *redis.Client
}

func NewStateStore(rdb *redis.Client) *StateStore {
	return &StateStore{RDB: rdb}
}

// Issue creates and stores a fresh state nonce.
func (s *StateStore) Issue(ctx context.Context) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	state := hex.EncodeToString(b)
	if err := s.RDB.Set(ctx, helpers.OAuthStateKey(state), "1", StateTTL).Err(); err != nil {
		return "", err
	}
	return state, nil
}

// Consume validates and deletes the state; a state can be used once.
func (s *StateStore) Consume(ctx context.Context, state string) error {
	if state == "" {
		return ErrStateInvalid
	}
	n, err := s.RDB.Del(ctx, helpers.OAuthStateKey(state)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStateInvalid
	}
	return nil
}
