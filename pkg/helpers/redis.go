package helpers

import (
	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// SessionKey is the Redis key of a user's session hash.
func SessionKey(userID string) string {
	return "user:session:" + userID
}

// OAuthStateKey is the Redis key of a pending OAuth state nonce.
func OAuthStateKey(state string) string {
	return "oauth:state:" + state
}
