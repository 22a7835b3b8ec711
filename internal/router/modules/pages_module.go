package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/alumni-network/internal/interface/http"
)

// PagesModule wires the server-rendered views. All routes go through the gate
// middleware attached to the page group; the handlers re-check on top of it.
type PagesModule struct {
	Handler *handlers.PageHandler
}

func NewPagesModule(h *handlers.PageHandler) *PagesModule {
	return &PagesModule{Handler: h}
}

func (m *PagesModule) Register(api, pages *gin.RouterGroup) {
	pages.GET("/", m.Handler.Home)
	pages.GET("/auth/login", m.Handler.Login)
	pages.GET("/auth/signup", m.Handler.Signup)
	pages.GET("/dashboard", m.Handler.Dashboard)
	pages.GET("/onboarding", m.Handler.Onboarding)
	pages.GET("/directory", m.Handler.DirectoryPage)
}
