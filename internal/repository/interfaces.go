package repository

import (
	"time"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the interface for organization
// directory operations. Lookup methods that feed authentication only
// return active rows.
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetBySlug(slug string) (*models.Organization, error)
	GetByLicenseKey(key string) (*models.Organization, error)
	SlugExists(slug string) (bool, error)
	Update(org *models.Organization) error
	Delete(id uuid.UUID) error
}

// RestaurantRepositoryInterface defines the interface for restaurant
// directory operations
type RestaurantRepositoryInterface interface {
	Create(restaurant *models.Restaurant) error
	GetByID(id uuid.UUID) (*models.Restaurant, error)
	GetBySlug(orgID uuid.UUID, slug string) (*models.Restaurant, error)
	ListActiveByOrganization(orgID uuid.UUID) ([]models.Restaurant, error)
	Update(restaurant *models.Restaurant) error
	Delete(id uuid.UUID) error
}

// UserRepositoryInterface defines the interface for user directory
// operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsernameInOrganization(orgID uuid.UUID, username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListByOrganization(orgID uuid.UUID, limit, offset int) ([]models.User, int64, error)
	UpdateLastLogin(id uuid.UUID, at time.Time) error
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}
