package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers item-photo routes. Downloads are public; uploads
// and deletes require the caller identity header.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, required gin.HandlerFunc) {
	items := g.Group("/items/:id/images")
	{
		items.GET("", h.ListByItem)
		items.POST("", required, h.Upload)
	}

	images := g.Group("/images")
	{
		images.GET("/:id", h.Serve)
		images.GET("/:id/thumbnail", h.ServeThumbnail)
		images.DELETE("/:id", required, h.Delete)
	}
}
