package router

import "github.com/gin-gonic/gin"

// Registry holds the two route surfaces: the JSON API under /api and the
// server-rendered pages on the engine root, guarded by the gate middleware.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	Pages   *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine, pageMiddleware ...gin.HandlerFunc) *Registry {
	api := engine.Group("/api")
	pages := engine.Group("/")
	if len(pageMiddleware) > 0 {
		pages.Use(pageMiddleware...)
	}
	return &Registry{Engine: engine, API: api, Pages: pages}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API, r.Pages)
	}
}
