package testutils

import (
	"time"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"

	"github.com/google/uuid"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values.
// Slug and license key are derived from the id so parallel fixtures
// never violate the unique indexes.
func (f *OrganizationFactory) Create() *models.Organization {
	id := uuid.New()
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:             "Test Organization",
		Slug:             "test-org-" + id.String()[:8],
		LicenseKey:       id.String(),
		SubscriptionType: models.SubscriptionProfessional,
		MaxRestaurants:   10,
		MaxUsers:         100,
		IsActive:         true,
	}
}

// WithSlug sets a custom slug for the organization
func (f *OrganizationFactory) WithSlug(slug string) *models.Organization {
	org := f.Create()
	org.Slug = slug
	return org
}

// Expired returns an organization whose subscription lapsed yesterday
func (f *OrganizationFactory) Expired() *models.Organization {
	org := f.Create()
	expired := time.Now().Add(-24 * time.Hour)
	org.ExpiresAt = &expired
	return org
}

// RestaurantFactory provides methods to create test Restaurant data
type RestaurantFactory struct{}

// NewRestaurantFactory creates a new RestaurantFactory
func NewRestaurantFactory() *RestaurantFactory {
	return &RestaurantFactory{}
}

// Create creates a test Restaurant with default values
func (f *RestaurantFactory) Create() *models.Restaurant {
	id := uuid.New()
	return &models.Restaurant{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		Name:           "Test Kitchen",
		Slug:           "test-kitchen-" + id.String()[:8],
		CuisineType:    "italian",
		Timezone:       "UTC",
		IsActive:       true,
	}
}

// WithOrganization sets the organization ID for the restaurant
func (f *RestaurantFactory) WithOrganization(orgID uuid.UUID) *models.Restaurant {
	restaurant := f.Create()
	restaurant.OrganizationID = orgID
	return restaurant
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values. The password hash is
// a real bcrypt digest of "password" at cost 10, precomputed so fixture
// creation stays fast; tests that need a known plaintext should hash
// their own.
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		Username:       "user-" + id.String()[:8],
		Email:          "user-" + id.String()[:8] + "@test.com",
		PasswordHash:   "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		FirstName:      "Maria",
		LastName:       "Santos",
		Role:           models.RoleHeadChef,
		IsActive:       true,
	}
}

// WithOrganization sets the organization ID for the user
func (f *UserFactory) WithOrganization(orgID uuid.UUID) *models.User {
	user := f.Create()
	user.OrganizationID = orgID
	return user
}

// WithRole sets the role for the user
func (f *UserFactory) WithRole(role models.UserRole) *models.User {
	user := f.Create()
	user.Role = role
	return user
}

// WithRestaurant binds the user to a restaurant
func (f *UserFactory) WithRestaurant(orgID, restaurantID uuid.UUID) *models.User {
	user := f.Create()
	user.OrganizationID = orgID
	user.RestaurantID = &restaurantID
	return user
}

// FactorySet provides access to all factories
type FactorySet struct {
	Organization *OrganizationFactory
	Restaurant   *RestaurantFactory
	User         *UserFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Organization: NewOrganizationFactory(),
		Restaurant:   NewRestaurantFactory(),
		User:         NewUserFactory(),
	}
}

// CreateTenantHierarchy creates an organization with one restaurant and
// one user bound to it
func (fs *FactorySet) CreateTenantHierarchy() (*models.Organization, *models.Restaurant, *models.User) {
	org := fs.Organization.Create()
	restaurant := fs.Restaurant.WithOrganization(org.ID)
	user := fs.User.WithRestaurant(org.ID, restaurant.ID)
	return org, restaurant, user
}
