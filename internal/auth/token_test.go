package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"
	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer(secret string) *TokenIssuer {
	return NewTokenIssuer(&AuthConfig{
		JWTSecret:       secret,
		Issuer:          "iterum-identity",
		TokenTTLMinutes: 30,
		BcryptCost:      MinBcryptCost,
	})
}

func testClaims() *SessionClaims {
	restaurantID := uuid.New()
	return &SessionClaims{
		UserID:           uuid.New(),
		OrganizationID:   uuid.New(),
		OrganizationSlug: "sunset-group",
		RestaurantID:     &restaurantID,
		Role:             models.RoleHeadChef,
		Scopes:           []string{ScopeRead, ScopeWrite, ScopeManage},
		RegisteredClaims: jwt.RegisteredClaims{Subject: "maria"},
	}
}

func TestTokenIssuer(t *testing.T) {
	t.Run("issue and decode round trip", func(t *testing.T) {
		issuer := testIssuer("test-secret")
		claims := testClaims()

		token, err := issuer.Issue(claims)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		decoded, err := issuer.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, claims.UserID, decoded.UserID)
		assert.Equal(t, claims.OrganizationID, decoded.OrganizationID)
		assert.Equal(t, "sunset-group", decoded.OrganizationSlug)
		require.NotNil(t, decoded.RestaurantID)
		assert.Equal(t, *claims.RestaurantID, *decoded.RestaurantID)
		assert.Equal(t, models.RoleHeadChef, decoded.Role)
		assert.Equal(t, []string{ScopeRead, ScopeWrite, ScopeManage}, decoded.Scopes)
		assert.Equal(t, "maria", decoded.Username())
		assert.Equal(t, "iterum-identity", decoded.Issuer)
	})

	t.Run("nil restaurant id survives round trip", func(t *testing.T) {
		issuer := testIssuer("test-secret")
		claims := testClaims()
		claims.RestaurantID = nil

		token, err := issuer.Issue(claims)
		require.NoError(t, err)

		decoded, err := issuer.Decode(token)
		require.NoError(t, err)
		assert.Nil(t, decoded.RestaurantID)
	})

	t.Run("expired token yields expired error", func(t *testing.T) {
		issuer := testIssuer("test-secret")
		issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

		token, err := issuer.Issue(testClaims())
		require.NoError(t, err)

		issuer.now = time.Now
		_, err = issuer.Decode(token)
		assert.True(t, errors.Is(err, apperrors.ErrExpiredToken))
	})

	t.Run("wrong key yields invalid error", func(t *testing.T) {
		token, err := testIssuer("first-secret").Issue(testClaims())
		require.NoError(t, err)

		_, err = testIssuer("second-secret").Decode(token)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, testClaims())
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = testIssuer("test-secret").Decode(token)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})

	t.Run("garbage input is rejected", func(t *testing.T) {
		_, err := testIssuer("test-secret").Decode("not.a.token")
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})

	t.Run("tampered payload is rejected", func(t *testing.T) {
		issuer := testIssuer("test-secret")
		token, err := issuer.Issue(testClaims())
		require.NoError(t, err)

		_, err = issuer.Decode(token + "AAAA")
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})

	t.Run("issue stamps expiry from ttl", func(t *testing.T) {
		issuer := testIssuer("test-secret")
		fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		issuer.now = func() time.Time { return fixed }

		token, err := issuer.Issue(testClaims())
		require.NoError(t, err)

		issuer.now = func() time.Time { return fixed.Add(time.Minute) }
		decoded, err := issuer.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, fixed.Add(30*time.Minute).Unix(), decoded.ExpiresAt.Unix())
		assert.Equal(t, fixed.Unix(), decoded.IssuedAt.Unix())
	})
}
