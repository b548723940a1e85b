package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers all item-related routes.
// Item detail is readable without an identity header; the rest of the
// surface requires the caller id.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, required, optional gin.HandlerFunc) {
	group := g.Group("/items")
	{
		group.GET("/search", h.Search)
		group.GET("/:id", optional, h.Get)

		group.GET("", required, h.ListOwn)
		group.POST("", required, h.Create)
		group.PATCH("/:id", required, h.Update)
		group.DELETE("/:id", required, h.Delete)
		group.POST("/:id/comment", required, h.Comment)
	}
}
