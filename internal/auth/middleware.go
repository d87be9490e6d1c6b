package auth

import (
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthMiddleware provides session token authentication middleware
type AuthMiddleware struct {
	issuer *TokenIssuer
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(issuer *TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// RequireAuth validates session tokens and sets tenant context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		claims, err := m.issuer.Decode(tokenString)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, apperrors.ErrExpiredToken) {
				c.JSON(status, gin.H{"error": apperrors.ErrExpiredToken.Error()})
			} else {
				c.JSON(status, gin.H{"error": apperrors.ErrInvalidToken.Error()})
			}
			c.Abort()
			return
		}

		setSessionContext(c, claims, tokenString)
		c.Next()
	}
}

// OptionalAuth validates session tokens if present but doesn't require them
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.issuer.Decode(tokenString)
		if err != nil {
			// Invalid token, continue without setting session context
			c.Next()
			return
		}

		setSessionContext(c, claims, tokenString)
		c.Next()
	}
}

// RequireScope rejects sessions whose token does not carry the scope
func (m *AuthMiddleware) RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetSessionClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		for _, s := range claims.Scopes {
			if s == scope {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient scope for this resource"})
		c.Abort()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", false
	}
	return tokenString, true
}

func setSessionContext(c *gin.Context, claims *SessionClaims, tokenString string) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Subject)
	c.Set("organization_id", claims.OrganizationID)
	c.Set("organization_slug", claims.OrganizationSlug)
	if claims.RestaurantID != nil {
		c.Set("restaurant_id", *claims.RestaurantID)
	}
	c.Set("role", claims.Role)
	c.Set("scopes", claims.Scopes)
	c.Set("session_claims", claims)
	c.Set("session_token", tokenString)
}

// GetUserID is a helper function to extract user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUsername is a helper function to extract username from context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get("username")
	if !exists {
		return "", false
	}

	name, ok := username.(string)
	return name, ok
}

// GetOrganizationID is a helper function to extract the organization from context
func GetOrganizationID(c *gin.Context) (uuid.UUID, bool) {
	orgID, exists := c.Get("organization_id")
	if !exists {
		return uuid.Nil, false
	}

	id, ok := orgID.(uuid.UUID)
	return id, ok
}

// GetRestaurantID is a helper function to extract the current restaurant
// from context; absent for an org_admin with no provisioned restaurants
func GetRestaurantID(c *gin.Context) (uuid.UUID, bool) {
	restaurantID, exists := c.Get("restaurant_id")
	if !exists {
		return uuid.Nil, false
	}

	id, ok := restaurantID.(uuid.UUID)
	return id, ok
}

// GetSessionClaims is a helper function to extract full session claims from context
func GetSessionClaims(c *gin.Context) (*SessionClaims, bool) {
	claims, exists := c.Get("session_claims")
	if !exists {
		return nil, false
	}

	sessionClaims, ok := claims.(*SessionClaims)
	return sessionClaims, ok
}

// GetSessionToken is a helper function to extract the raw bearer token from context
func GetSessionToken(c *gin.Context) (string, bool) {
	token, exists := c.Get("session_token")
	if !exists {
		return "", false
	}

	tokenString, ok := token.(string)
	return tokenString, ok
}
