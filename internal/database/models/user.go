package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an employee account. A user belongs to exactly one
// organization and is optionally bound to one restaurant; only org_admin
// users may leave RestaurantID nil. Username and email occupy a single
// global namespace across organizations.
type User struct {
	BaseModel
	OrganizationID uuid.UUID       `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	RestaurantID   *uuid.UUID      `json:"restaurant_id,omitempty" gorm:"type:uuid;index"`
	Username       string          `json:"username" gorm:"uniqueIndex;not null;size:100" validate:"required,min=3,max=100"`
	Email          string          `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash   string          `json:"-" gorm:"not null;size:255"`
	FirstName      string          `json:"first_name" gorm:"size:100"`
	LastName       string          `json:"last_name" gorm:"size:100"`
	Role           UserRole        `json:"role" gorm:"type:varchar(50);not null;default:'staff'" validate:"required"`
	Permissions    json.RawMessage `json:"permissions" gorm:"type:jsonb"`
	IsActive       bool            `json:"is_active" gorm:"default:true"`
	LastLogin      *time.Time      `json:"last_login,omitempty"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Restaurant   *Restaurant  `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// FullName returns the display name for the user
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}
