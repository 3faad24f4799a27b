package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/response"
)

var (
	ErrMissingHeader = apperror.New(http.StatusUnauthorized, "missing Authorization header")
	ErrInvalidHeader = apperror.New(http.StatusUnauthorized, "invalid Authorization header format")
	ErrInvalidToken  = apperror.New(http.StatusUnauthorized, "invalid or expired token")
	ErrMissingScope  = apperror.New(http.StatusForbidden, "forbidden: token lacks the required scope")
)

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, ErrMissingHeader)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(c, ErrInvalidHeader)
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			response.Error(c, ErrInvalidToken)
			return
		}

		// Store client info into Gin context for later handlers.
		c.Set(clientIDKey, claims.ClientID)
		c.Set(claimsKey, claims)

		c.Next()
	}
}

// RequireScope ensures the token carries scope.
// It MUST be used after AuthRequired.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.Error(c, ErrInvalidToken)
			return
		}
		if !claims.HasScope(scope) {
			response.Error(c, ErrMissingScope)
			return
		}
		c.Next()
	}
}
