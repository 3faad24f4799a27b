package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *BookingHandler, authMiddleware, writeMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:reference", h.Get)
		group.GET("/:reference/history", h.History)
		group.GET("/:reference/confirmation", h.Confirmation)
	}

	// === Write Scope Routes ===
	writes := group.Group("", writeMiddleware)
	{
		writes.POST("", h.Create)
		writes.PUT("/:reference", h.Update)
		writes.PATCH("/:reference/cancel", h.Cancel)
	}
}
