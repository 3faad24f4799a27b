package auth

import "github.com/gin-gonic/gin"

const (
	clientIDKey = "clientID"
	claimsKey   = "claims"
)

// GetClientID returns the authenticated client's ID or empty string.
func GetClientID(c *gin.Context) string {
	if v, ok := c.Get(clientIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetClaims returns the validated token claims, or nil outside authenticated routes.
func GetClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}
