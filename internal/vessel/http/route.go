package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *VesselHandler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/vessels")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:imo", h.Get)
	}
}
