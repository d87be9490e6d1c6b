package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"
	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/logger"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService orchestrates tenant resolution, credential verification,
// authorization computation and token issuance. Each login or switch is a
// synchronous chain of directory reads plus at most one write, the
// last_login stamp.
type AuthService struct {
	organizations repository.OrganizationRepositoryInterface
	users         repository.UserRepositoryInterface
	resolver      *AccessResolver
	hasher        *PasswordHasher
	issuer        *TokenIssuer
	log           *logger.Logger
	now           func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	organizations repository.OrganizationRepositoryInterface,
	users repository.UserRepositoryInterface,
	restaurants repository.RestaurantRepositoryInterface,
	hasher *PasswordHasher,
	issuer *TokenIssuer,
) *AuthService {
	return &AuthService{
		organizations: organizations,
		users:         users,
		resolver:      NewAccessResolver(restaurants),
		hasher:        hasher,
		issuer:        issuer,
		log:           logger.New(),
		now:           time.Now,
	}
}

// LoginRequest represents the inbound login payload
type LoginRequest struct {
	OrganizationSlug string     `json:"organization_slug" binding:"required" example:"sunset-group"`
	Username         string     `json:"username" binding:"required" example:"john.doe"`
	Password         string     `json:"password" binding:"required" example:"password123"`
	RestaurantID     *uuid.UUID `json:"restaurant_id,omitempty"`
}

// SwitchRestaurantRequest represents the inbound restaurant-switch payload
type SwitchRestaurantRequest struct {
	NewRestaurantID uuid.UUID `json:"new_restaurant_id" binding:"required"`
}

// IntrospectRequest represents the inbound token introspection payload
type IntrospectRequest struct {
	Token string `json:"token" binding:"required"`
}

// UserSummary is the user portion of a login response
type UserSummary struct {
	ID                    uuid.UUID       `json:"id"`
	Username              string          `json:"username"`
	Email                 string          `json:"email"`
	FullName              string          `json:"full_name"`
	Role                  models.UserRole `json:"role"`
	CanManageOrganization bool            `json:"can_manage_organization"`
	CanSwitchRestaurants  bool            `json:"can_switch_restaurants"`
}

// OrganizationSummary is the organization portion of a login response
type OrganizationSummary struct {
	ID               uuid.UUID               `json:"id"`
	Name             string                  `json:"name"`
	Slug             string                  `json:"slug"`
	SubscriptionType models.SubscriptionType `json:"subscription_type"`
}

// RestaurantSummary is one restaurant entry in a login response
type RestaurantSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	CuisineType string    `json:"cuisine_type,omitempty"`
}

// SessionResponse is the success payload of login and restaurant switch
type SessionResponse struct {
	AccessToken           string              `json:"accessToken"`
	TokenType             string              `json:"tokenType"`
	ExpiresIn             int64               `json:"expiresIn"`
	User                  UserSummary         `json:"user"`
	Organization          OrganizationSummary `json:"organization"`
	CurrentRestaurant     *RestaurantSummary  `json:"current_restaurant,omitempty"`
	AccessibleRestaurants []RestaurantSummary `json:"accessible_restaurants"`
}

// IntrospectResponse is the decoded-claims payload handed to downstream
// collaborators for tenant-scoped query filtering
type IntrospectResponse struct {
	Valid  bool           `json:"valid"`
	Claims *SessionClaims `json:"claims,omitempty"`
}

// Login runs the login state machine: organization resolution,
// subscription check, credential verification, authorization computation,
// token issuance. Organization-not-found, unknown-username and
// wrong-password all surface as the same ErrInvalidCredentials; the
// distinction exists only in logs.
func (s *AuthService) Login(req *LoginRequest) (*SessionResponse, error) {
	// Received -> OrganizationResolved
	org, err := s.organizations.GetBySlug(req.OrganizationSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithField("organization_slug", req.OrganizationSlug).
				WithField("reason", "organization_not_found").
				Info("login rejected")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to resolve organization: %w", err)
	}

	// A lapsed subscription rejects before credentials are even looked at
	if org.IsExpired(s.now()) {
		s.log.WithField("organization_slug", org.Slug).
			WithField("reason", "subscription_expired").
			Info("login rejected")
		return nil, apperrors.ErrSubscriptionExpired
	}

	// OrganizationResolved -> Authenticated
	user, err := s.users.GetByUsernameInOrganization(org.ID, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithField("organization_slug", org.Slug).
				WithField("reason", "user_not_found").
				Info("login rejected")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.log.WithField("organization_slug", org.Slug).
			WithField("username", user.Username).
			WithField("reason", "bad_password").
			Info("login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	// Authenticated -> AuthorizationComputed. A requested-but-inaccessible
	// restaurant is surfaced distinctly: identity is already proven, so
	// disclosure is safe.
	accessible, err := s.resolver.AccessibleRestaurants(user)
	if err != nil {
		return nil, err
	}
	current, err := s.resolver.SelectCurrentRestaurant(user, accessible, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	// AuthorizationComputed -> TokenIssued
	token, err := s.issueSession(user, org, current)
	if err != nil {
		return nil, err
	}

	// The last_login stamp must never turn a successful login into a
	// failure; persistence errors are logged and swallowed.
	if err := s.users.UpdateLastLogin(user.ID, s.now()); err != nil {
		s.log.WithField("username", user.Username).
			Warnf("failed to persist last_login: %v", err)
	}

	return s.sessionResponse(token, user, org, current, accessible), nil
}

// SwitchRestaurant re-validates a session against the requested
// restaurant and issues a new token. The accessible set is recomputed
// from the current user row, never taken from the old token, so role or
// binding changes since issuance are honored.
func (s *AuthService) SwitchRestaurant(tokenString string, newRestaurantID uuid.UUID) (*SessionResponse, error) {
	claims, err := s.issuer.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserInactive
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	org, err := s.organizations.GetByID(user.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to resolve organization: %w", err)
	}
	if org.IsExpired(s.now()) {
		return nil, apperrors.ErrSubscriptionExpired
	}

	accessible, err := s.resolver.AccessibleRestaurants(user)
	if err != nil {
		return nil, err
	}

	target := findRestaurant(accessible, newRestaurantID)
	if target == nil {
		s.log.WithField("username", user.Username).
			WithField("restaurant_id", newRestaurantID).
			Info("restaurant switch denied")
		return nil, apperrors.ErrRestaurantAccessDenied
	}

	token, err := s.issueSession(user, org, target)
	if err != nil {
		return nil, err
	}

	return s.sessionResponse(token, user, org, target, accessible), nil
}

// Introspect decodes a session token for downstream collaborators
func (s *AuthService) Introspect(tokenString string) (*IntrospectResponse, error) {
	claims, err := s.issuer.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	return &IntrospectResponse{Valid: true, Claims: claims}, nil
}

// issueSession builds fresh claims from the current user row and signs
// them. Role and scopes always come from the row, never from a prior
// token.
func (s *AuthService) issueSession(user *models.User, org *models.Organization, current *models.Restaurant) (string, error) {
	claims := &SessionClaims{
		UserID:           user.ID,
		OrganizationID:   org.ID,
		OrganizationSlug: org.Slug,
		Role:             user.Role,
		Scopes:           ScopesForRole(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.Username,
		},
	}
	if current != nil {
		id := current.ID
		claims.RestaurantID = &id
	}
	return s.issuer.Issue(claims)
}

func (s *AuthService) sessionResponse(token string, user *models.User, org *models.Organization, current *models.Restaurant, accessible []models.Restaurant) *SessionResponse {
	resp := &SessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.issuer.TTL().Seconds()),
		User: UserSummary{
			ID:                    user.ID,
			Username:              user.Username,
			Email:                 user.Email,
			FullName:              user.FullName(),
			Role:                  user.Role,
			CanManageOrganization: user.Role.CanManageOrganization(),
			CanSwitchRestaurants:  user.Role.CanManageOrganization(),
		},
		Organization: OrganizationSummary{
			ID:               org.ID,
			Name:             org.Name,
			Slug:             org.Slug,
			SubscriptionType: org.SubscriptionType,
		},
		AccessibleRestaurants: make([]RestaurantSummary, 0, len(accessible)),
	}
	if current != nil {
		resp.CurrentRestaurant = restaurantSummary(current)
	}
	for idx := range accessible {
		resp.AccessibleRestaurants = append(resp.AccessibleRestaurants, *restaurantSummary(&accessible[idx]))
	}
	return resp
}

func restaurantSummary(r *models.Restaurant) *RestaurantSummary {
	return &RestaurantSummary{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		CuisineType: r.CuisineType,
	}
}
