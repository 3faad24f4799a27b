package api

import (
	"strings"
	"time"

	"github.com/nekogravitycat/freight-booking-backend/internal/auth"
)

// TokenInfoResponse describes the bearer token of the current request.
type TokenInfoResponse struct {
	ClientID  string    `json:"clientID"`
	Scopes    []string  `json:"scopes"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewTokenInfoResponse(c *auth.Claims) TokenInfoResponse {
	resp := TokenInfoResponse{
		ClientID: c.ClientID,
		Scopes:   strings.Fields(c.Scope),
	}
	if c.ExpiresAt != nil {
		resp.ExpiresAt = c.ExpiresAt.Time
	}
	return resp
}
