package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/pkg/response"
)

// CallerEmailKey is the gin context key holding the verified caller email.
// It is set only by the Identity middleware, never from client input.
const CallerEmailKey = "caller_email"

// IdentityVerifier resolves an opaque bearer credential to an email.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// AccountReader is the account lookup the admin gate needs.
type AccountReader interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// Identity authenticates the request. The resolved email is attached to
// the gin context for handlers to pass explicitly into services.
func Identity(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "missing bearer credential"))
			return
		}
		credential := strings.TrimPrefix(header, "Bearer ")
		email, err := verifier.Verify(c.Request.Context(), credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "invalid credential"))
			return
		}
		c.Set(CallerEmailKey, email)
		c.Next()
	}
}

// RequireAdmin gates privileged operations. It must run after Identity:
// the stored account for the verified email must exist and carry the admin
// role.
func RequireAdmin(accounts AccountReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := CallerEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "identity check did not run"))
			return
		}
		acc, err := accounts.GetByEmail(c.Request.Context(), email)
		if err != nil || !acc.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeForbidden, "admin role required"))
			return
		}
		c.Next()
	}
}

// CallerEmail returns the verified email set by Identity, or empty.
func CallerEmail(c *gin.Context) string {
	if v, ok := c.Get(CallerEmailKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
