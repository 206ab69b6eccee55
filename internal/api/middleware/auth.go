package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmagur1203/filehost/internal/vfs"
)

// tenantKey is the gin context key the authenticated tenant is stored under.
const tenantKey = "tenant"

// ErrUnauthenticated is returned by an Authenticator when the request
// carries no usable identity.
var ErrUnauthenticated = errors.New("no authenticated tenant")

// Authenticator resolves a request to an authenticated tenant identity.
// Session and credential handling live upstream; implementations only map
// whatever the upstream layer attached to the request onto a tenant id.
type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// HeaderAuthenticator trusts a tenant id injected into a request header by
// an upstream session layer or reverse proxy.
type HeaderAuthenticator struct {
	Header string
}

// Authenticate reads the tenant id from the configured header.
func (h HeaderAuthenticator) Authenticate(r *http.Request) (string, error) {
	id := r.Header.Get(h.Header)
	if id == "" {
		return "", ErrUnauthenticated
	}
	if err := vfs.ValidateTenantID(id); err != nil {
		return "", err
	}
	return id, nil
}

// Auth creates a middleware that rejects unauthenticated requests and
// stores the tenant id for handlers.
func Auth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := authn.Authenticate(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "authentication required",
			})
			c.Abort()
			return
		}
		c.Set(tenantKey, tenant)
		c.Next()
	}
}

// Tenant returns the authenticated tenant id stored by Auth.
func Tenant(c *gin.Context) string {
	return c.GetString(tenantKey)
}
