package auth

import (
	"errors"
	"net/http"

	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for login, restaurant switching and
// token introspection
type AuthHandler struct {
	service *AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/auth/login
// @Summary Log in to an organization
// @Description Authenticate against an organization by slug and username, returning a signed session token carrying tenant context
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} SessionResponse "Session issued"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid organization or credentials"
// @Failure 403 {object} map[string]interface{} "Subscription expired or restaurant access denied"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		h.writeAuthError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SwitchRestaurant handles POST /api/auth/switch-restaurant
// @Summary Switch the session to another restaurant
// @Description Re-validate the caller's session against the requested restaurant and issue a new token; access is recomputed from the current user record, not the old token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SwitchRestaurantRequest true "Target restaurant"
// @Success 200 {object} SessionResponse "New session issued"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid or expired token"
// @Failure 403 {object} map[string]interface{} "Restaurant access denied"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /auth/switch-restaurant [post]
func (h *AuthHandler) SwitchRestaurant(c *gin.Context) {
	tokenString, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
		return
	}

	var req SwitchRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.service.SwitchRestaurant(tokenString, req.NewRestaurantID)
	if err != nil {
		h.writeAuthError(c, err, "Restaurant switch failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Introspect handles POST /api/auth/introspect
// @Summary Introspect a session token
// @Description Decode a session token and return the tenant-context claims used by downstream services for query scoping
// @Tags auth
// @Accept json
// @Produce json
// @Param request body IntrospectRequest true "Token to introspect"
// @Success 200 {object} IntrospectResponse "Decoded claims"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid or expired token"
// @Router /auth/introspect [post]
func (h *AuthHandler) Introspect(c *gin.Context) {
	var req IntrospectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.service.Introspect(req.Token)
	if err != nil {
		h.writeAuthError(c, err, "Token introspection failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// writeAuthError maps the error taxonomy onto HTTP statuses. Credential
// failures share one 401 body; post-authentication failures are surfaced
// distinctly.
func (h *AuthHandler) writeAuthError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrExpiredToken),
		errors.Is(err, apperrors.ErrUserInactive):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSubscriptionExpired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRestaurantAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
