package repository

import (
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// GetByID retrieves an active organization by ID
func (r *OrganizationRepository) GetByID(id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetBySlug retrieves an active organization by its globally unique slug.
// Inactive organizations are indistinguishable from absent ones.
func (r *OrganizationRepository) GetBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "slug = ? AND is_active = ?", slug, true).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetByLicenseKey retrieves an active organization by license key
func (r *OrganizationRepository) GetByLicenseKey(key string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "license_key = ? AND is_active = ?", key, true).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// SlugExists reports whether any organization, active or not, already
// holds the slug. Used by the migration engine for collision probing;
// the unique index remains the backstop.
func (r *OrganizationRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an organization
func (r *OrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Delete deletes an organization; owned restaurants and users cascade
func (r *OrganizationRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Organization{}, "id = ?", id).Error
}
