package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alumni-network/internal/gate"
	"github.com/oksasatya/alumni-network/pkg/helpers"
)

// SessionResolver resolves the current session from request cookies.
// Implementations may rotate the credential pair during resolution; rotated
// cookies must be attached to the response before returning.
type SessionResolver interface {
	Resolve(c *gin.Context) (gate.Session, bool)
}

const sessionTTL = 24 * time.Hour

// CookieSessionResolver validates the access-token cookie against the Redis
// session hash. When the access token is expired but the refresh token is
// still good it rotates the session id and both tokens, writing the fresh
// cookies onto the response in the same pass.
type CookieSessionResolver struct {
	JWT     *helpers.JWTManager
	RDB     *redis.Client
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewCookieSessionResolver(jwt *helpers.JWTManager, rdb *redis.Client, cookies *helpers.Manager, logger *logrus.Logger) *CookieSessionResolver {
	return &CookieSessionResolver{JWT: jwt, RDB: rdb, Cookies: cookies, Logger: logger}
}

func (r *CookieSessionResolver) Resolve(c *gin.Context) (gate.Session, bool) {
	ctx := c.Request.Context()

	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		if claims, err := r.JWT.ParseAccessToken(token); err == nil {
			if r.sessionMatches(ctx, claims.UserID, claims.SessionID) {
				return gate.Session{UserID: claims.UserID}, true
			}
		}
	}

	// Access token missing or stale; fall back to the refresh token.
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		return gate.Session{}, false
	}
	claims, err := r.JWT.ParseRefreshToken(refresh)
	if err != nil {
		return gate.Session{}, false
	}
	if !r.sessionMatches(ctx, claims.UserID, claims.SessionID) {
		return gate.Session{}, false
	}

	sess, err := r.rotate(ctx, c, claims.UserID)
	if err != nil {
		if r.Logger != nil {
			r.Logger.WithError(err).WithField("user_id", claims.UserID).Warn("session rotation failed")
		}
		return gate.Session{}, false
	}
	return sess, true
}

func (r *CookieSessionResolver) sessionMatches(ctx context.Context, userID, sid string) bool {
	data, err := r.RDB.HGetAll(ctx, helpers.SessionKey(userID)).Result()
	if err != nil || len(data) == 0 {
		return false
	}
	return data["sid"] == sid
}

func (r *CookieSessionResolver) rotate(ctx context.Context, c *gin.Context, userID string) (gate.Session, error) {
	sid := uuid.NewString()
	access, aexp, err := r.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return gate.Session{}, err
	}
	refresh, rexp, err := r.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return gate.Session{}, err
	}

	key := helpers.SessionKey(userID)
	pipe := r.RDB.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"sid":        sid,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return gate.Session{}, err
	}

	r.Cookies.SetPair(c, access, aexp, refresh, rexp)
	return gate.Session{UserID: userID}, nil
}
