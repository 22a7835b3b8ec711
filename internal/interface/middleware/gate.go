package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alumni-network/internal/gate"
)

// Context keys for the request-scoped gating snapshot. Every view reads this
// one snapshot instead of querying the stores again, so a single render pass
// cannot observe two different profile states.
const (
	CtxSessionKey      = "gate_session"
	CtxProfileStateKey = "gate_profile_state"
)

// ProfileStateLoader fetches the gating-relevant slice of a profile.
type ProfileStateLoader interface {
	LoadProfileState(userID string) (gate.ProfileState, error)
}

// Gate is the edge enforcement of the access-control decision procedure.
// Public and asset paths pass through without any session lookup. Protected
// paths resolve the session (possibly rotating cookies), load the profile
// state, and either redirect or stash the snapshot for the page handlers.
func Gate(resolver SessionResolver, profiles ProfileStateLoader, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		class, need := gate.Classify(path)
		if class != gate.ClassProtected {
			c.Next()
			return
		}

		var sess gate.Session
		if need.Auth {
			sess, _ = resolver.Resolve(c)
		}

		var prof gate.ProfileState
		if sess.Authenticated() && (need.Onboarding || need.Approval) {
			p, err := profiles.LoadProfileState(sess.UserID)
			if err != nil {
				// Fail open toward onboarding: a missing or unreadable
				// profile reads as "not onboarded". Logged so an outage is
				// not mistaken for a wave of new members.
				if logger != nil {
					logger.WithError(err).WithField("user_id", sess.UserID).Warn("profile state load failed")
				}
			} else {
				prof = p
			}
		}

		req := gate.Request{Path: path, RequestURI: c.Request.URL.RequestURI()}
		decision := gate.Evaluate(req, sess, prof)
		if !decision.Allow {
			c.Redirect(http.StatusFound, decision.RedirectTo)
			c.Abort()
			return
		}

		c.Set(CtxSessionKey, sess)
		c.Set(CtxProfileStateKey, prof)
		c.Next()
	}
}

// CurrentSession returns the gate snapshot session, if the gate ran.
func CurrentSession(c *gin.Context) (gate.Session, bool) {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return gate.Session{}, false
	}
	sess, ok := v.(gate.Session)
	return sess, ok
}

// CurrentProfileState returns the gate snapshot profile state, if the gate ran.
func CurrentProfileState(c *gin.Context) (gate.ProfileState, bool) {
	v, ok := c.Get(CtxProfileStateKey)
	if !ok {
		return gate.ProfileState{}, false
	}
	prof, ok := v.(gate.ProfileState)
	return prof, ok
}
