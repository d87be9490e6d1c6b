package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"
	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockOrgs        *mocks.MockOrganizationRepositoryInterface
	mockUsers       *mocks.MockUserRepositoryInterface
	mockRestaurants *mocks.MockRestaurantRepositoryInterface
	hasher          *PasswordHasher
	issuer          *TokenIssuer
	service         *AuthService

	org        *models.Organization
	restaurant *models.Restaurant
	user       *models.User
}

// SetupTest sets up the test suite with a healthy single-restaurant tenant
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockOrgs = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockUsers = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockRestaurants = mocks.NewMockRestaurantRepositoryInterface(suite.ctrl)
	suite.hasher = NewPasswordHasher(MinBcryptCost)
	suite.issuer = testIssuer("test-secret")

	suite.service = NewAuthService(suite.mockOrgs, suite.mockUsers, suite.mockRestaurants, suite.hasher, suite.issuer)

	hash, err := suite.hasher.Hash("kitchen-secret")
	suite.Require().NoError(err)

	orgID := uuid.New()
	restaurantID := uuid.New()
	suite.org = &models.Organization{
		BaseModel:        models.BaseModel{ID: orgID},
		Name:             "Sunset Group",
		Slug:             "sunset-group",
		SubscriptionType: models.SubscriptionProfessional,
		IsActive:         true,
	}
	suite.restaurant = &models.Restaurant{
		BaseModel:      models.BaseModel{ID: restaurantID},
		OrganizationID: orgID,
		Name:           "Harbor Kitchen",
		Slug:           "harbor",
		IsActive:       true,
	}
	suite.user = &models.User{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: orgID,
		RestaurantID:   &restaurantID,
		Username:       "maria",
		Email:          "maria@sunset.test",
		PasswordHash:   hash,
		FirstName:      "Maria",
		LastName:       "Santos",
		Role:           models.RoleHeadChef,
		IsActive:       true,
	}
}

// TearDownTest cleans up after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthServiceTestSuite) loginRequest() *LoginRequest {
	return &LoginRequest{
		OrganizationSlug: "sunset-group",
		Username:         "maria",
		Password:         "kitchen-secret",
	}
}

// TestLoginSuccess tests the full login chain for a bound user
func (suite *AuthServiceTestSuite) TestLoginSuccess() {
	suite.mockOrgs.EXPECT().GetBySlug("sunset-group").Return(suite.org, nil)
	suite.mockUsers.EXPECT().GetByUsernameInOrganization(suite.org.ID, "maria").Return(suite.user, nil)
	suite.mockRestaurants.EXPECT().GetByID(suite.restaurant.ID).Return(suite.restaurant, nil)
	suite.mockUsers.EXPECT().UpdateLastLogin(suite.user.ID, gomock.Any()).Return(nil)

	resp, err := suite.service.Login(suite.loginRequest())

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	assert.NotEmpty(suite.T(), resp.AccessToken)
	assert.Equal(suite.T(), "Bearer", resp.TokenType)
	assert.Equal(suite.T(), int64(1800), resp.ExpiresIn)
	assert.Equal(suite.T(), "maria", resp.User.Username)
	assert.Equal(suite.T(), "Maria Santos", resp.User.FullName)
	assert.False(suite.T(), resp.User.CanManageOrganization)
	assert.Equal(suite.T(), "sunset-group", resp.Organization.Slug)
	suite.Require().NotNil(resp.CurrentRestaurant)
	assert.Equal(suite.T(), suite.restaurant.ID, resp.CurrentRestaurant.ID)
	suite.Require().Len(resp.AccessibleRestaurants, 1)

	// The issued token carries the tenant context
	claims, err := suite.issuer.Decode(resp.AccessToken)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), suite.user.ID, claims.UserID)
	assert.Equal(suite.T(), suite.org.ID, claims.OrganizationID)
	suite.Require().NotNil(claims.RestaurantID)
	assert.Equal(suite.T(), suite.restaurant.ID, *claims.RestaurantID)
	assert.Equal(suite.T(), models.RoleHeadChef, claims.Role)
	assert.Equal(suite.T(), []string{ScopeRead, ScopeWrite, ScopeManage}, claims.Scopes)
}

// TestLoginUnknownOrganization tests that a missing organization is
// indistinguishable from a bad password
func (suite *AuthServiceTestSuite) TestLoginUnknownOrganization() {
	suite.mockOrgs.EXPECT().GetBySlug("sunset-group").Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Login(suite.loginRequest())
	assert.True(suite.T(), errors.Is(err, apperrors.ErrInvalidCredentials))
}

// TestLoginUnknownUser tests that an unknown username yields the same
// error as a bad password
func (suite *AuthServiceTestSuite) TestLoginUnknownUser() {
	suite.mockOrgs.EXPECT().GetBySlug("sunset-group").Return(suite.org, nil)
	suite.mockUsers.EXPECT().GetByUsernameInOrganization(suite.org.ID, "maria").Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Login(suite.loginRequest())
	assert.True(suite.T(), errors.Is(err, apperrors.ErrInvalidCredentials))
}

// TestLoginWrongPassword tests credential rejection
func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	suite.mockOrgs.EXPECT().GetBySlug("sunset-group").Return(suite.org, nil)
	suite.mockUsers.EXPECT().GetByUsernameInOrganization(suite.org.ID, "maria").Return(suite.user, nil)

	req := suite.loginRequest()
	req.Password = "wrong"
	_, err := suite.service.Login(req)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrInvalidCredentials))
}

// TestLoginExpiredSubscription tests that a lapsed subscription rejects
// before credentials are examined
func (suite *AuthServiceTestSuite) TestLoginExpiredSubscription() {
	expired := time.Now().Add(-24 * time.Hour)
	suite.org.ExpiresAt = &expired
	suite.mockOrgs.EXPECT().GetBySlug("sunset-group").Return(suite.org, nil)
	// No user lookup expected

	_, err := suite.service.Login(suite.loginRequest())
	assert.True(suite.T(), errors.Is(err, apperrors.ErrSubscriptionExpired))
}

// TestLoginPlaceholderHash tests that a migrated account without a
// recoverable password cannot log in with any input
func (suite *AuthServiceTestSuite) TestLoginPlaceholderHash() {
	suite.user.PasswordHash = PlaceholderHash
	suite.mockOrgs.EXPECT().GetBySlug("sunset-group").Return(suite.org, nil)
	suite.mockUsers.EXPECT().GetByUsernameInOrganization(suite.org.ID, "maria").Return(suite.user, nil)

	req := suite.loginRequest()
	req.Password = PlaceholderHash
	_, err := suite.service.Login(req)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrInvalidCredentials))
}

// TestLoginRequestedInaccessibleRestaurant tests the post-authentication
// denial, distinct from the merged credential error
func (suite *AuthServiceTestSuite) TestLoginRequestedInaccessibleRestaurant() {
	suite.mockOrgs.EXPECT().GetBySlug("sunset-group").Return(suite.org, nil)
	suite.mockUsers.EXPECT().GetByUsernameInOrganization(suite.org.ID, "maria").Return(suite.user, nil)
	suite.mockRestaurants.EXPECT().GetByID(suite.restaurant.ID).Return(suite.restaurant, nil)

	outside := uuid.New()
	req := suite.loginRequest()
	req.RestaurantID = &outside
	_, err := suite.service.Login(req)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrRestaurantAccessDenied))
}

// TestLoginLastLoginFailureSwallowed tests that a failed last_login stamp
// never turns a successful login into a failure
func (suite *AuthServiceTestSuite) TestLoginLastLoginFailureSwallowed() {
	suite.mockOrgs.EXPECT().GetBySlug("sunset-group").Return(suite.org, nil)
	suite.mockUsers.EXPECT().GetByUsernameInOrganization(suite.org.ID, "maria").Return(suite.user, nil)
	suite.mockRestaurants.EXPECT().GetByID(suite.restaurant.ID).Return(suite.restaurant, nil)
	suite.mockUsers.EXPECT().UpdateLastLogin(suite.user.ID, gomock.Any()).Return(errors.New("disk full"))

	resp, err := suite.service.Login(suite.loginRequest())
	suite.Require().NoError(err)
	assert.NotEmpty(suite.T(), resp.AccessToken)
}

// TestLoginOrgAdminWithoutRestaurants tests that an org_admin of an
// organization with no restaurants still gets a session
func (suite *AuthServiceTestSuite) TestLoginOrgAdminWithoutRestaurants() {
	suite.user.Role = models.RoleOrgAdmin
	suite.user.RestaurantID = nil
	suite.mockOrgs.EXPECT().GetBySlug("sunset-group").Return(suite.org, nil)
	suite.mockUsers.EXPECT().GetByUsernameInOrganization(suite.org.ID, "maria").Return(suite.user, nil)
	suite.mockRestaurants.EXPECT().ListActiveByOrganization(suite.org.ID).Return(nil, nil)
	suite.mockUsers.EXPECT().UpdateLastLogin(suite.user.ID, gomock.Any()).Return(nil)

	resp, err := suite.service.Login(suite.loginRequest())
	suite.Require().NoError(err)
	assert.Nil(suite.T(), resp.CurrentRestaurant)
	assert.Empty(suite.T(), resp.AccessibleRestaurants)
	assert.True(suite.T(), resp.User.CanManageOrganization)
}

// TestSwitchRestaurantSuccess tests re-issuing a session against another
// accessible restaurant
func (suite *AuthServiceTestSuite) TestSwitchRestaurantSuccess() {
	suite.user.Role = models.RoleOrgAdmin
	other := &models.Restaurant{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: suite.org.ID,
		Name:           "Uptown Kitchen",
		Slug:           "uptown",
		IsActive:       true,
	}

	token, err := suite.service.issueSession(suite.user, suite.org, suite.restaurant)
	suite.Require().NoError(err)

	suite.mockUsers.EXPECT().GetByID(suite.user.ID).Return(suite.user, nil)
	suite.mockOrgs.EXPECT().GetByID(suite.org.ID).Return(suite.org, nil)
	suite.mockRestaurants.EXPECT().ListActiveByOrganization(suite.org.ID).
		Return([]models.Restaurant{*suite.restaurant, *other}, nil)

	resp, err := suite.service.SwitchRestaurant(token, other.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(resp.CurrentRestaurant)
	assert.Equal(suite.T(), other.ID, resp.CurrentRestaurant.ID)

	claims, err := suite.issuer.Decode(resp.AccessToken)
	suite.Require().NoError(err)
	suite.Require().NotNil(claims.RestaurantID)
	assert.Equal(suite.T(), other.ID, *claims.RestaurantID)
}

// TestSwitchRestaurantDenied tests that an inaccessible target is denied
func (suite *AuthServiceTestSuite) TestSwitchRestaurantDenied() {
	token, err := suite.service.issueSession(suite.user, suite.org, suite.restaurant)
	suite.Require().NoError(err)

	suite.mockUsers.EXPECT().GetByID(suite.user.ID).Return(suite.user, nil)
	suite.mockOrgs.EXPECT().GetByID(suite.org.ID).Return(suite.org, nil)
	suite.mockRestaurants.EXPECT().GetByID(suite.restaurant.ID).Return(suite.restaurant, nil)

	_, err = suite.service.SwitchRestaurant(token, uuid.New())
	assert.True(suite.T(), errors.Is(err, apperrors.ErrRestaurantAccessDenied))
}

// TestSwitchRecomputesFromCurrentRow tests that a role downgrade since
// token issuance is honored: the old admin token does not carry its
// access forward
func (suite *AuthServiceTestSuite) TestSwitchRecomputesFromCurrentRow() {
	suite.user.Role = models.RoleOrgAdmin
	other := &models.Restaurant{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: suite.org.ID,
		Name:           "Uptown Kitchen",
		IsActive:       true,
	}

	// Token issued while the user was still org_admin
	token, err := suite.service.issueSession(suite.user, suite.org, suite.restaurant)
	suite.Require().NoError(err)

	// The row has since been downgraded to a bound head_chef
	downgraded := *suite.user
	downgraded.Role = models.RoleHeadChef
	downgraded.RestaurantID = &suite.restaurant.ID

	suite.mockUsers.EXPECT().GetByID(suite.user.ID).Return(&downgraded, nil)
	suite.mockOrgs.EXPECT().GetByID(suite.org.ID).Return(suite.org, nil)
	suite.mockRestaurants.EXPECT().GetByID(suite.restaurant.ID).Return(suite.restaurant, nil)

	_, err = suite.service.SwitchRestaurant(token, other.ID)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrRestaurantAccessDenied))
}

// TestSwitchExpiredToken tests that an expired session cannot switch
func (suite *AuthServiceTestSuite) TestSwitchExpiredToken() {
	suite.issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := suite.service.issueSession(suite.user, suite.org, suite.restaurant)
	suite.Require().NoError(err)
	suite.issuer.now = time.Now

	_, err = suite.service.SwitchRestaurant(token, uuid.New())
	assert.True(suite.T(), errors.Is(err, apperrors.ErrExpiredToken))
}

// TestSwitchUserGone tests that a deactivated or deleted user cannot
// switch even with a still-valid token
func (suite *AuthServiceTestSuite) TestSwitchUserGone() {
	token, err := suite.service.issueSession(suite.user, suite.org, suite.restaurant)
	suite.Require().NoError(err)

	suite.mockUsers.EXPECT().GetByID(suite.user.ID).Return(nil, gorm.ErrRecordNotFound)

	_, err = suite.service.SwitchRestaurant(token, suite.restaurant.ID)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrUserInactive))
}

// TestSwitchExpiredSubscription tests that a lapsed subscription blocks
// switching
func (suite *AuthServiceTestSuite) TestSwitchExpiredSubscription() {
	token, err := suite.service.issueSession(suite.user, suite.org, suite.restaurant)
	suite.Require().NoError(err)

	expired := time.Now().Add(-time.Hour)
	lapsed := *suite.org
	lapsed.ExpiresAt = &expired

	suite.mockUsers.EXPECT().GetByID(suite.user.ID).Return(suite.user, nil)
	suite.mockOrgs.EXPECT().GetByID(suite.org.ID).Return(&lapsed, nil)

	_, err = suite.service.SwitchRestaurant(token, suite.restaurant.ID)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrSubscriptionExpired))
}

// TestIntrospect tests decoding a session for downstream collaborators
func (suite *AuthServiceTestSuite) TestIntrospect() {
	token, err := suite.service.issueSession(suite.user, suite.org, suite.restaurant)
	suite.Require().NoError(err)

	resp, err := suite.service.Introspect(token)
	suite.Require().NoError(err)
	assert.True(suite.T(), resp.Valid)
	suite.Require().NotNil(resp.Claims)
	assert.Equal(suite.T(), suite.user.ID, resp.Claims.UserID)

	_, err = suite.service.Introspect("garbage")
	assert.True(suite.T(), errors.Is(err, apperrors.ErrInvalidToken))
}

// TestAuthServiceTestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
