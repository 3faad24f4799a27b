package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *LocationHandler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/locations")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("/:id", h.Get) // Get location details
	}
}
