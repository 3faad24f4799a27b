package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it defaults to 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			zap.L().Error("request failed",
				zap.String("path", c.FullPath()),
				zap.String("kind", string(appErr.Kind)),
				zap.Error(err),
			)
		}
		c.AbortWithStatusJSON(appErr.Code, ErrorResponse{Error: appErr.Message, Kind: string(appErr.Kind)})
		return
	}

	zap.L().Error("unhandled error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Kind:  string(apperror.KindInternal),
	})
}

// BadRequest sends a 400 response for payloads rejected by request binding.
func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request body",
		"kind":    string(apperror.KindInvalidInput),
		"details": err.Error(),
	})
}
