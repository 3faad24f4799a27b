package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nekogravitycat/freight-booking-backend/internal/location"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/response"
)

type LocationHandler struct {
	service location.Service
}

func NewHandler(service location.Service) *LocationHandler {
	return &LocationHandler{service: service}
}

// Get retrieves specific location details.
func (h *LocationHandler) Get(c *gin.Context) {
	id := c.Param("id")

	// Validate UUID format
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, apperror.InvalidInput("invalid UUID"))
		return
	}

	loc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLocationResponse(loc))
}
