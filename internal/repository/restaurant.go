package repository

import (
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantRepository handles database operations for restaurants
type RestaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// Create creates a new restaurant
func (r *RestaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

// GetByID retrieves an active restaurant by ID
func (r *RestaurantRepository) GetByID(id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.First(&restaurant, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetBySlug retrieves an active restaurant by its organization-scoped slug
func (r *RestaurantRepository) GetBySlug(orgID uuid.UUID, slug string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.First(&restaurant, "organization_id = ? AND slug = ? AND is_active = ?", orgID, slug, true).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// ListActiveByOrganization retrieves the active restaurants of an
// organization in stable name order. This ordering also fixes which
// restaurant an unbound org_admin lands in at login.
func (r *RestaurantRepository) ListActiveByOrganization(orgID uuid.UUID) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.
		Where("organization_id = ? AND is_active = ?", orgID, true).
		Order("name ASC").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

// Update updates a restaurant
func (r *RestaurantRepository) Update(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

// Delete deletes a restaurant
func (r *RestaurantRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Restaurant{}, "id = ?", id).Error
}
