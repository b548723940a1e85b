package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers all booking routes. Every endpoint needs the
// caller identity header.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, required gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(required)
	{
		group.GET("", h.ListByBooker)
		group.GET("/owner", h.ListByOwner)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
	}
}
