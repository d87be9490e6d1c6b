package repository

import (
	"time"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves an active user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsernameInOrganization retrieves an active user by username within
// one organization. The lookup is always organization-scoped: identical
// usernames under different organizations are distinct identities.
func (r *UserRepository) GetByUsernameInOrganization(orgID uuid.UUID, username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "organization_id = ? AND username = ? AND is_active = ?", orgID, username, true).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves an active user by email (globally unique)
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ? AND is_active = ?", email, true).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByOrganization retrieves active users of an organization with pagination
func (r *UserRepository) ListByOrganization(orgID uuid.UUID, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{}).Where("organization_id = ? AND is_active = ?", orgID, true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("username ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateLastLogin stamps the login time. This is the only row a runtime
// request ever writes.
func (r *UserRepository) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete deletes a user
func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}
