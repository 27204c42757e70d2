package session_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/appcurve/olivia-party-sub000/internal/middleware"
	"github.com/appcurve/olivia-party-sub000/internal/modules/session"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/hash"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/token"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := session.NewMemoryDirectory()
	access := token.New("handler-access-secret", 15*time.Minute)
	refresh := token.New("handler-refresh-secret", time.Hour)
	svc := session.NewService(dir, hash.New(bcrypt.MinCost), access, refresh)
	handler := session.NewHandler(svc, session.CookieConfig{RefreshPath: "/api/v1/auth"})

	r := gin.New()
	v1 := r.Group("/api/v1")

	refreshGuard := middleware.RequireAuth(middleware.NewRefreshCookieAuthenticator(refresh))
	handler.RegisterPublicRoutes(v1, refreshGuard)

	protected := v1.Group("/")
	protected.Use(middleware.RequireAuth(middleware.NewAccessTokenAuthenticator(access, svc)))
	handler.RegisterProtectedRoutes(protected)

	return r
}

func doJSON(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookieByName(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

const registerBody = `{"name":"Alice Example","email":"alice@x.com","password":"Secret1A-long"}`
const signInBody = `{"email":"alice@x.com","password":"Secret1A-long"}`

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t)

	// Register.
	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	// Duplicate email conflicts.
	w = doJSON(r, http.MethodPost, "/api/v1/auth/register", registerBody)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Sign in sets both cookies.
	w = doJSON(r, http.MethodPost, "/api/v1/auth/sign-in", signInBody)
	require.Equal(t, http.StatusOK, w.Code)
	authCookie := cookieByName(t, w, session.CookieAuthentication)
	refreshCookie := cookieByName(t, w, session.CookieRefresh)
	assert.True(t, authCookie.HttpOnly)
	assert.True(t, refreshCookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, authCookie.SameSite)
	assert.Equal(t, "/api/v1/auth", refreshCookie.Path)
	assert.InDelta(t, time.Hour.Seconds(), float64(refreshCookie.MaxAge), 2)

	// The access cookie opens the session endpoint.
	w = doJSON(r, http.MethodGet, "/api/v1/auth/session", "", authCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@x.com")
	assert.NotContains(t, w.Body.String(), "hash")

	// Refresh rotates the pair; the new cookie's lifetime may only shrink.
	w = doJSON(r, http.MethodGet, "/api/v1/auth/refresh", "", refreshCookie)
	require.Equal(t, http.StatusOK, w.Code)
	rotated := cookieByName(t, w, session.CookieRefresh)
	assert.NotEqual(t, refreshCookie.Value, rotated.Value)
	assert.LessOrEqual(t, rotated.MaxAge, int(time.Hour.Seconds()))

	// The superseded cookie is single-use.
	w = doJSON(r, http.MethodGet, "/api/v1/auth/refresh", "", refreshCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Sign out clears the session and both cookies.
	w = doJSON(r, http.MethodPost, "/api/v1/auth/sign-out", "", authCookie)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Less(t, cookieByName(t, w, session.CookieAuthentication).MaxAge, 0)

	// Even the freshly rotated token is dead after sign-out.
	w = doJSON(r, http.MethodGet, "/api/v1/auth/refresh", "", rotated)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignIn_BadCredentials(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/api/v1/auth/register", registerBody)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/sign-in",
		`{"email":"alice@x.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/sign-in",
		`{"email":"nobody@x.com","password":"Secret1A-long"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_RequiresCookie(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/auth/refresh", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/auth/refresh", "",
		&http.Cookie{Name: session.CookieRefresh, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRejectMissingOrForgedToken(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/api/v1/auth/register", registerBody)

	w := doJSON(r, http.MethodGet, "/api/v1/auth/session", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	forged, err := token.New("wrong-secret", time.Minute).
		Sign(token.Payload{Email: "alice@x.com", Name: "Alice Example"})
	require.NoError(t, err)
	w = doJSON(r, http.MethodGet, "/api/v1/auth/session", "",
		&http.Cookie{Name: session.CookieAuthentication, Value: forged})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/api/v1/auth/register", registerBody)
	w := doJSON(r, http.MethodPost, "/api/v1/auth/sign-in", signInBody)
	authCookie := cookieByName(t, w, session.CookieAuthentication)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/change-password",
		`{"old_password":"Secret1A-long","new_password":"Secret1A-long"}`, authCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/change-password",
		`{"old_password":"wrong-old-pass","new_password":"Brand-new-secret2"}`, authCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/change-password",
		`{"old_password":"Secret1A-long","new_password":"Brand-new-secret2"}`, authCookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/sign-in",
		`{"email":"alice@x.com","password":"Brand-new-secret2"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/api/v1/auth/register", registerBody)
	w := doJSON(r, http.MethodPost, "/api/v1/auth/sign-in", signInBody)
	authCookie := cookieByName(t, w, session.CookieAuthentication)

	w = doJSON(r, http.MethodPut, "/api/v1/users/me",
		`{"name":"Alice Renamed","locale":"fr-FR"}`, authCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice Renamed")
	assert.Contains(t, w.Body.String(), "fr-FR")
}
