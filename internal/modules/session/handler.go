package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/appcurve/olivia-party-sub000/internal/pkg/response"
)

// Cookie names the player web app and this API agree on.
const (
	CookieAuthentication = "Authentication"
	CookieRefresh        = "Refresh"
)

// CookieConfig is the transport-level cookie policy. The refresh cookie
// is scoped to RefreshPath so the long-lived credential only travels to
// the auth endpoints.
type CookieConfig struct {
	Secure      bool
	RefreshPath string
}

type Handler struct {
	service *Service
	cookies CookieConfig
}

func NewHandler(service *Service, cookies CookieConfig) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// RegisterPublicRoutes mounts the unauthenticated endpoints. refreshGuard
// is the refresh-cookie Authenticator adapted to middleware; it rejects
// requests without a well-signed Refresh cookie before the handler runs.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, refreshGuard gin.HandlerFunc) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/sign-in", h.SignIn)
		authGroup.GET("/refresh", refreshGuard, h.Refresh)
	}
}

// RegisterProtectedRoutes mounts endpoints behind the access-token guard.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/session", h.Session)
		authGroup.POST("/sign-out", h.SignOut)
		authGroup.POST("/change-password", h.ChangePassword)
	}
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PUT("/me", h.UpdateMe)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailConflict) {
			response.Conflict(c, "This email is already registered")
			return
		}
		response.Internal(c)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.service.VerifyCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	tokens, err := h.service.SignIn(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setAuthCookies(c, tokens, h.service.AccessTTL(), h.service.RefreshTTL())
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Session(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), c.GetString("user_email"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Refresh(c *gin.Context) {
	presented, err := c.Cookie(CookieRefresh)
	if err != nil || presented == "" {
		response.Unauthorized(c)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), presented)
	if err != nil {
		h.fail(c, err)
		return
	}

	// The refresh cookie's Max-Age matches the rotated token's remaining
	// lifetime, not the configured default.
	h.setAuthCookies(c, result.Tokens, h.service.AccessTTL(), result.RefreshTTL)
	response.Success(c, http.StatusOK, gin.H{"user": result.User})
}

func (h *Handler) SignOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context(), c.GetString("user_email")); err != nil {
		h.fail(c, err)
		return
	}

	h.clearAuthCookies(c)
	c.Status(http.StatusNoContent)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	email := c.GetString("user_email")
	err := h.service.ChangePassword(c.Request.Context(), email, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, ErrSamePassword) {
			response.BadRequest(c, "New password must differ from the current one")
			return
		}
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"changed": true})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), c.GetString("user_email"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), c.GetString("user_email"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// fail is the single place session errors turn into HTTP statuses.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		response.Unauthorized(c)
	default:
		response.Internal(c)
	}
}

func (h *Handler) setAuthCookies(c *gin.Context, tokens TokenPair, accessTTL, refreshTTL time.Duration) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieAuthentication, tokens.AccessToken, int(accessTTL.Seconds()), "/", "", h.cookies.Secure, true)
	c.SetCookie(CookieRefresh, tokens.RefreshToken, int(refreshTTL.Seconds()), h.cookies.RefreshPath, "", h.cookies.Secure, true)
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieAuthentication, "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie(CookieRefresh, "", -1, h.cookies.RefreshPath, "", h.cookies.Secure, true)
}
