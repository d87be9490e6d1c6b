package auth

import (
	"errors"
	"fmt"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"
	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission scope names embedded in session tokens
const (
	ScopeRead     = "read"
	ScopeWrite    = "write"
	ScopeManage   = "manage"
	ScopeAdmin    = "admin"
	ScopeOrgAdmin = "org_admin"
)

// roleScopes is the closed role-to-scope table, derived once from the
// capability methods on UserRole so the two can never drift apart.
var roleScopes = buildRoleScopes()

func buildRoleScopes() map[models.UserRole][]string {
	roles := []models.UserRole{
		models.RoleOrgAdmin,
		models.RoleRestaurantManager,
		models.RoleHeadChef,
		models.RoleSousChef,
		models.RoleLineCook,
		models.RoleStaff,
	}

	table := make(map[models.UserRole][]string, len(roles))
	for _, role := range roles {
		scopes := []string{ScopeRead}
		if role.CanManageKitchen() {
			scopes = append(scopes, ScopeWrite, ScopeManage)
		}
		if role.CanManageOrganization() {
			scopes = append(scopes, ScopeAdmin, ScopeOrgAdmin)
		}
		table[role] = scopes
	}
	return table
}

// ScopesForRole returns the permission scopes for a role. Unknown roles
// fall back to read-only.
func ScopesForRole(role models.UserRole) []string {
	scopes, ok := roleScopes[role]
	if !ok {
		scopes = roleScopes[models.RoleStaff]
	}
	out := make([]string, len(scopes))
	copy(out, scopes)
	return out
}

// AccessResolver computes which restaurants a user may act within. It is
// a pure function over the injected directory handle, so tests can run it
// against mocks.
type AccessResolver struct {
	restaurants repository.RestaurantRepositoryInterface
}

// NewAccessResolver creates a new access resolver
func NewAccessResolver(restaurants repository.RestaurantRepositoryInterface) *AccessResolver {
	return &AccessResolver{restaurants: restaurants}
}

// AccessibleRestaurants resolves the set of restaurants the user may act
// within. org_admin sees every active restaurant of the organization in
// stable name order; everyone else sees at most their bound restaurant,
// and only while it is active and still owned by the same organization.
func (r *AccessResolver) AccessibleRestaurants(user *models.User) ([]models.Restaurant, error) {
	if user.Role == models.RoleOrgAdmin {
		restaurants, err := r.restaurants.ListActiveByOrganization(user.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("failed to list organization restaurants: %w", err)
		}
		return restaurants, nil
	}

	if user.RestaurantID == nil {
		return nil, nil
	}

	restaurant, err := r.restaurants.GetByID(*user.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch bound restaurant: %w", err)
	}
	if restaurant.OrganizationID != user.OrganizationID {
		// Cross-organization binding is a data fault, not an access grant
		return nil, nil
	}

	return []models.Restaurant{*restaurant}, nil
}

// SelectCurrentRestaurant picks the restaurant a fresh session lands in.
// Priority: the explicitly requested restaurant, which must be a member
// of the accessible set and is never silently substituted; then the
// user's bound restaurant if still accessible; then the first accessible
// restaurant; then none, which is valid only for an org_admin whose
// organization has no provisioned restaurants yet.
func (r *AccessResolver) SelectCurrentRestaurant(user *models.User, accessible []models.Restaurant, requestedID *uuid.UUID) (*models.Restaurant, error) {
	if requestedID != nil {
		if found := findRestaurant(accessible, *requestedID); found != nil {
			return found, nil
		}
		return nil, apperrors.ErrRestaurantAccessDenied
	}

	if user.RestaurantID != nil {
		if found := findRestaurant(accessible, *user.RestaurantID); found != nil {
			return found, nil
		}
	}

	if len(accessible) > 0 {
		return &accessible[0], nil
	}

	return nil, nil
}

func findRestaurant(restaurants []models.Restaurant, id uuid.UUID) *models.Restaurant {
	for idx := range restaurants {
		if restaurants[idx].ID == id {
			return &restaurants[idx]
		}
	}
	return nil
}
