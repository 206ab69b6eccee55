package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderAuthenticator(t *testing.T) {
	authn := HeaderAuthenticator{Header: "X-Tenant-ID"}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Tenant-ID", "alice")
	tenant, err := authn.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, "alice", tenant)
}

func TestHeaderAuthenticatorMissing(t *testing.T) {
	authn := HeaderAuthenticator{Header: "X-Tenant-ID"}

	_, err := authn.Authenticate(httptest.NewRequest("GET", "/", nil))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestHeaderAuthenticatorRejectsPathyIDs(t *testing.T) {
	authn := HeaderAuthenticator{Header: "X-Tenant-ID"}

	for _, id := range []string{"..", ".", "a/b", `a\b`, "/abs", "../up"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Tenant-ID", id)
		_, err := authn.Authenticate(req)
		assert.Error(t, err, "id %q", id)
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(HeaderAuthenticator{Header: "X-Tenant-ID"}))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, Tenant(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-Tenant-ID", "bob")
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "bob", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/whoami", nil))
	assert.Equal(t, 401, w.Code)
}
