package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/alumni-network/internal/container"
	handlers "github.com/oksasatya/alumni-network/internal/interface/http"
	"github.com/oksasatya/alumni-network/internal/interface/middleware"
	"github.com/oksasatya/alumni-network/pkg/helpers"
)

// AuthModule wires the credential API and the OAuth redirect flow.
// Public: POST /api/auth/signup, /api/auth/login, /api/auth/refresh,
// GET /auth/google, GET /auth/callback.
// Protected: POST /api/auth/logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(api, pages *gin.RouterGroup) {
	api.POST("/auth/signup", m.Handler.Signup)
	api.POST("/auth/login", m.Handler.Login)
	api.POST("/auth/refresh", m.Handler.Refresh)

	auth := api.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
	}

	// OAuth runs over browser redirects, not JSON.
	pages.GET("/auth/google", m.Handler.GoogleStart)
	pages.GET("/auth/callback", m.Handler.GoogleCallback)
}
