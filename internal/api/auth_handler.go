package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/freight-booking-backend/internal/auth"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/response"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

//
// GET /v1/auth/me
//

func (h *AuthHandler) Me(c *gin.Context) {
	claims := auth.GetClaims(c)
	if claims == nil {
		response.Error(c, auth.ErrInvalidToken)
		return
	}

	c.JSON(http.StatusOK, NewTokenInfoResponse(claims))
}
