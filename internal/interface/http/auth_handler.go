package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alumni-network/internal/application"
	"github.com/oksasatya/alumni-network/internal/gate"
	"github.com/oksasatya/alumni-network/internal/infrastructure/oauth"
	"github.com/oksasatya/alumni-network/internal/interface/middleware"
	"github.com/oksasatya/alumni-network/pkg/helpers"
	"github.com/oksasatya/alumni-network/pkg/response"
	"github.com/oksasatya/alumni-network/pkg/validation"
)

// AuthHandler serves the credential API plus the OAuth redirect flow.
type AuthHandler struct {
	Auth     *application.AuthService
	Profiles *application.ProfileService
	Google   *oauth.GoogleProvider
	States   *oauth.StateStore
	Logger   *logrus.Logger
	Cookies  *helpers.Manager
}

func NewAuthHandler(auth *application.AuthService, profiles *application.ProfileService, google *oauth.GoogleProvider, states *oauth.StateStore, logger *logrus.Logger, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Auth: auth, Profiles: profiles, Google: google, States: states, Logger: logger, Cookies: cookies}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Auth.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, "email already registered", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "signup failed", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusCreated, gin.H{"user_id": u.ID, "email": u.Email, "next": gate.OnboardingPath}, "account created", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user_id": u.ID, "email": u.Email}, "login successful",
		map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Auth.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed",
		map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Auth.Logout(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// GoogleStart GET /auth/google kicks off the consent round-trip.
func (h *AuthHandler) GoogleStart(c *gin.Context) {
	if h.Google == nil || !h.Google.Configured() {
		c.Redirect(http.StatusFound, loginErrorURL("oauth not configured"))
		return
	}
	state, err := h.States.Issue(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("oauth state issue failed")
		}
		c.Redirect(http.StatusFound, loginErrorURL("oauth unavailable"))
		return
	}
	c.Redirect(http.StatusFound, h.Google.AuthURL(state))
}

// GoogleCallback GET /auth/callback?code&state completes the exchange.
// Success lands on the dashboard when a profile already exists, on
// onboarding otherwise; every failure path returns to login with a reason.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if errMsg := c.Query("error"); errMsg != "" {
		c.Redirect(http.StatusFound, loginErrorURL(errMsg))
		return
	}
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, loginErrorURL("missing authorization code"))
		return
	}
	if err := h.States.Consume(c.Request.Context(), c.Query("state")); err != nil {
		c.Redirect(http.StatusFound, loginErrorURL("state mismatch"))
		return
	}

	ident, err := h.Google.Exchange(c.Request.Context(), code)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("oauth exchange failed")
		}
		c.Redirect(http.StatusFound, loginErrorURL("sign-in failed"))
		return
	}

	u, pair, err := h.Auth.LoginWithGoogle(c.Request.Context(), ident)
	if err != nil {
		c.Redirect(http.StatusFound, loginErrorURL("sign-in failed"))
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)

	state, err := h.Profiles.LoadProfileState(u.ID)
	if err == nil && state.Onboarded {
		c.Redirect(http.StatusFound, gate.DashboardPath)
		return
	}
	c.Redirect(http.StatusFound, gate.OnboardingPath)
}

func loginErrorURL(reason string) string {
	return gate.LoginPath + "?error=" + url.QueryEscape(reason)
}
