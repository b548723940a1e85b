package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers all item-request routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, required gin.HandlerFunc) {
	group := g.Group("/requests")
	group.Use(required)
	{
		group.POST("", h.Create)
		group.GET("", h.ListOwn)
		group.GET("/all", h.ListOthers)
		group.GET("/:id", h.Get)
	}
}
