package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/pkg/types"
)

type fakeVerifier struct {
	email string
	err   error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (string, error) {
	return f.email, f.err
}

type fakeAccounts struct {
	accounts map[string]*models.Account
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	acc, ok := f.accounts[email]
	if !ok {
		return nil, errors.New("account not found")
	}
	return acc, nil
}

func newIdentityRouter(verifier IdentityVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Identity(verifier), func(c *gin.Context) {
		c.String(http.StatusOK, CallerEmail(c))
	})
	return r
}

func TestIdentity_MissingCredential(t *testing.T) {
	r := newIdentityRouter(&fakeVerifier{email: "alice@x.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentity_InvalidCredential(t *testing.T) {
	r := newIdentityRouter(&fakeVerifier{err: errors.New("bad token")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer nope")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentity_SetsCallerEmail(t *testing.T) {
	r := newIdentityRouter(&fakeVerifier{email: "alice@x.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "alice@x.com", w.Body.String())
}

func newAdminRouter(verifier IdentityVerifier, accounts AccountReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", Identity(verifier), RequireAdmin(accounts), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireAdmin_ForbidsNonAdmin(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]*models.Account{
		"alice@x.com": {Email: "alice@x.com", Role: types.AccountRoleUser},
	}}
	r := newAdminRouter(&fakeVerifier{email: "alice@x.com"}, accounts)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_ForbidsUnknownAccount(t *testing.T) {
	r := newAdminRouter(&fakeVerifier{email: "ghost@x.com"}, &fakeAccounts{accounts: map[string]*models.Account{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]*models.Account{
		"root@x.com": {Email: "root@x.com", Role: types.AccountRoleAdmin},
	}}
	r := newAdminRouter(&fakeVerifier{email: "root@x.com"}, accounts)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
