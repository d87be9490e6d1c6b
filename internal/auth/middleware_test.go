package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func middlewareTestRouter(m *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/protected", m.RequireAuth())
	protected.GET("", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		username, _ := GetUsername(c)
		orgID, _ := GetOrganizationID(c)
		restaurantID, hasRestaurant := GetRestaurantID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":         userID,
			"username":        username,
			"organization_id": orgID,
			"restaurant_id":   restaurantID,
			"has_restaurant":  hasRestaurant,
		})
	})

	admin := router.Group("/admin", m.RequireAuth(), m.RequireScope(ScopeOrgAdmin))
	admin.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	optional := router.Group("/optional", m.OptionalAuth())
	optional.GET("", func(c *gin.Context) {
		_, authenticated := GetSessionClaims(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})

	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireAuth(t *testing.T) {
	issuer := testIssuer("test-secret")
	router := middlewareTestRouter(NewAuthMiddleware(issuer))

	t.Run("valid token sets tenant context", func(t *testing.T) {
		claims := testClaims()
		token, err := issuer.Issue(claims)
		require.NoError(t, err)

		recorder := doRequest(router, "/protected", "Bearer "+token)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), claims.UserID.String())
		assert.Contains(t, recorder.Body.String(), `"username":"maria"`)
		assert.Contains(t, recorder.Body.String(), `"has_restaurant":true`)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		recorder := doRequest(router, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("non-bearer header is rejected", func(t *testing.T) {
		recorder := doRequest(router, "/protected", "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		recorder := doRequest(router, "/protected", "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		stale := testIssuer("test-secret")
		stale.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := stale.Issue(testClaims())
		require.NoError(t, err)

		recorder := doRequest(router, "/protected", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		token, err := testIssuer("other-secret").Issue(testClaims())
		require.NoError(t, err)

		recorder := doRequest(router, "/protected", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireScope(t *testing.T) {
	issuer := testIssuer("test-secret")
	router := middlewareTestRouter(NewAuthMiddleware(issuer))

	t.Run("session with the scope passes", func(t *testing.T) {
		claims := testClaims()
		claims.Scopes = ScopesForRole("org_admin")
		token, err := issuer.Issue(claims)
		require.NoError(t, err)

		recorder := doRequest(router, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("session without the scope is forbidden", func(t *testing.T) {
		token, err := issuer.Issue(testClaims())
		require.NoError(t, err)

		recorder := doRequest(router, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	issuer := testIssuer("test-secret")
	router := middlewareTestRouter(NewAuthMiddleware(issuer))

	t.Run("anonymous request passes through", func(t *testing.T) {
		recorder := doRequest(router, "/optional", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"authenticated":false`)
	})

	t.Run("valid token attaches session", func(t *testing.T) {
		token, err := issuer.Issue(testClaims())
		require.NoError(t, err)

		recorder := doRequest(router, "/optional", "Bearer "+token)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"authenticated":true`)
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		recorder := doRequest(router, "/optional", "Bearer garbage")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"authenticated":false`)
	})
}

func TestContextGetters(t *testing.T) {
	t.Run("empty context yields nothing", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		_, ok := GetUserID(c)
		assert.False(t, ok)
		_, ok = GetOrganizationID(c)
		assert.False(t, ok)
		_, ok = GetRestaurantID(c)
		assert.False(t, ok)
		_, ok = GetSessionClaims(c)
		assert.False(t, ok)
		_, ok = GetSessionToken(c)
		assert.False(t, ok)
	})

	t.Run("restaurant id absent for unbound session", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		claims := testClaims()
		claims.RestaurantID = nil
		setSessionContext(c, claims, "raw-token")

		_, ok := GetRestaurantID(c)
		assert.False(t, ok)
		userID, ok := GetUserID(c)
		assert.True(t, ok)
		assert.Equal(t, claims.UserID, userID)
		token, ok := GetSessionToken(c)
		assert.True(t, ok)
		assert.Equal(t, "raw-token", token)
	})
}
