package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(m *JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/read", AuthRequired(m), func(c *gin.Context) {
		c.String(http.StatusOK, GetClientID(c))
	})
	r.POST("/write", AuthRequired(m), RequireScope(ScopeBookingWrite), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func call(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	r := newAuthRouter(m)

	token, err := m.GenerateAccessToken("forwarder-42")
	require.NoError(t, err)

	w := call(r, http.MethodGet, "/read", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "forwarder-42", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/read", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/read", "not-a-jwt").Code)

	other := NewJWTManager("other-secret", time.Minute)
	forged, err := other.GenerateAccessToken("forwarder-42")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/read", forged).Code)
}

func TestExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)
	token, err := m.GenerateAccessToken("forwarder-42")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestRequireScope(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	r := newAuthRouter(m)

	readOnly, err := m.GenerateAccessToken("forwarder-42")
	require.NoError(t, err)
	writer, err := m.GenerateAccessToken("forwarder-42", "booking:read", ScopeBookingWrite)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, call(r, http.MethodPost, "/write", readOnly).Code)
	assert.Equal(t, http.StatusNoContent, call(r, http.MethodPost, "/write", writer).Code)
}
