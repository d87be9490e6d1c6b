package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"
	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims represents JWT session token claims. The embedded tenant
// context is the sole source of scoping truth for downstream query
// filtering; it goes stale only until re-authentication or an explicit
// restaurant switch, an accepted tradeoff against a directory round trip
// per request.
type SessionClaims struct {
	UserID           uuid.UUID       `json:"user_id"`
	OrganizationID   uuid.UUID       `json:"organization_id"`
	OrganizationSlug string          `json:"organization_slug"`
	RestaurantID     *uuid.UUID      `json:"restaurant_id,omitempty"`
	Role             models.UserRole `json:"role"`
	Scopes           []string        `json:"scopes"`
	jwt.RegisteredClaims
}

// Username returns the subject of the session
func (c *SessionClaims) Username() string {
	return c.Subject
}

// TokenIssuer signs and decodes session tokens. Issuance and decoding are
// pure in-memory computation; expiration is evaluated lazily at decode.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a token issuer from auth configuration
func NewTokenIssuer(cfg *AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL(),
		now:    time.Now,
	}
}

// Issue signs the claims with the default TTL
func (i *TokenIssuer) Issue(claims *SessionClaims) (string, error) {
	return i.IssueWithTTL(claims, i.ttl)
}

// IssueWithTTL signs the claims with an explicit TTL. Registered fields
// are stamped here; whatever the caller had in them is overwritten.
func (i *TokenIssuer) IssueWithTTL(claims *SessionClaims, ttl time.Duration) (string, error) {
	now := i.now()
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.NotBefore = jwt.NewNumericDate(now)
	claims.RegisteredClaims.Issuer = i.issuer

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Decode validates and parses a session token. Expired tokens yield
// ErrExpiredToken; anything else wrong with the token, including a
// signature under a different key or algorithm, yields ErrInvalidToken.
func (i *TokenIssuer) Decode(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrExpiredToken
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// TTL returns the default session lifetime
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}
