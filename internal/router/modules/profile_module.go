package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/alumni-network/internal/container"
	handlers "github.com/oksasatya/alumni-network/internal/interface/http"
	"github.com/oksasatya/alumni-network/internal/interface/middleware"
	"github.com/oksasatya/alumni-network/pkg/helpers"
)

// ProfileModule wires the onboarding API.
// Protected: GET /api/profile, POST /api/onboarding, POST /api/onboarding/avatar.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(api, pages *gin.RouterGroup) {
	auth := api.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.GET("/profile", m.Handler.Get)
		auth.POST("/onboarding", m.Handler.SubmitOnboarding)
		auth.POST("/onboarding/avatar", m.Handler.UploadAvatar)
	}
}
