package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its routes on the API
// group, the page group, or both.
type Module interface {
	Register(api, pages *gin.RouterGroup)
}
