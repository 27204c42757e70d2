package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/appcurve/olivia-party-sub000/internal/modules/session"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/hash"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/token"
)

func newAuthFixture(t *testing.T) (*token.Codec, *session.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := session.NewMemoryDirectory()
	access := token.New("mw-access-secret", 15*time.Minute)
	refresh := token.New("mw-refresh-secret", time.Hour)
	svc := session.NewService(dir, hash.New(bcrypt.MinCost), access, refresh)

	_, err := svc.Register(context.Background(), session.RegisterRequest{
		Name:     "Olivia Example",
		Email:    "olivia@example.com",
		Password: "Secret1A-long",
	})
	require.NoError(t, err)

	return access, svc
}

func guardedRouter(guard gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/guarded", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    c.GetInt64("user_id"),
			"email": c.GetString("user_email"),
		})
	})
	return r
}

func TestRequireAuth_AccessCookie(t *testing.T) {
	access, svc := newAuthFixture(t)
	r := guardedRouter(RequireAuth(NewAccessTokenAuthenticator(access, svc)))

	signed, err := access.Sign(token.Payload{Email: "olivia@example.com", Name: "Olivia Example"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieAuthentication, Value: signed})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "olivia@example.com")
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	access, svc := newAuthFixture(t)
	r := guardedRouter(RequireAuth(NewAccessTokenAuthenticator(access, svc)))

	signed, err := access.Sign(token.Payload{Email: "olivia@example.com", Name: "Olivia Example"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_Rejections(t *testing.T) {
	access, svc := newAuthFixture(t)
	r := guardedRouter(RequireAuth(NewAccessTokenAuthenticator(access, svc)))

	// No credential at all.
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong signing secret.
	forged, err := token.New("other-secret", time.Minute).
		Sign(token.Payload{Email: "olivia@example.com"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieAuthentication, Value: forged})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid signature but no such account in the directory.
	ghost, err := access.Sign(token.Payload{Email: "ghost@example.com"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieAuthentication, Value: ghost})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RefreshCookieGuard(t *testing.T) {
	refresh := token.New("mw-refresh-secret", time.Hour)
	gin.SetMode(gin.TestMode)
	r := guardedRouter(RequireAuth(NewRefreshCookieAuthenticator(refresh)))

	signed, err := refresh.Sign(token.Payload{Email: "olivia@example.com", Name: "Olivia Example"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieRefresh, Value: signed})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	// Signature-only guard: the principal carries claims, not a directory id.
	assert.Contains(t, w.Body.String(), `"id":0`)

	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
