package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/alumni-network/internal/container"
	handlers "github.com/oksasatya/alumni-network/internal/interface/http"
	"github.com/oksasatya/alumni-network/internal/interface/middleware"
	"github.com/oksasatya/alumni-network/pkg/helpers"
)

// DirectoryModule wires the member directory search API.
// Protected: GET /api/directory, GET /api/directory/suggest.
type DirectoryModule struct {
	Handler *handlers.DirectoryHandler
	JWT     *helpers.JWTManager
}

func NewDirectoryModule(h *handlers.DirectoryHandler, jwt *helpers.JWTManager) *DirectoryModule {
	return &DirectoryModule{Handler: h, JWT: jwt}
}

func (m *DirectoryModule) Register(api, pages *gin.RouterGroup) {
	auth := api.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.GET("/directory", m.Handler.Search)
		auth.GET("/directory/suggest", m.Handler.Suggest)
	}
}
