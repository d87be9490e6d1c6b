package models

import (
	"encoding/json"
	"time"
)

// Organization represents the root entity for multi-tenancy. An
// organization owns restaurants and employs users; its slug is unique
// system-wide and is the tenant handle presented at login.
type Organization struct {
	BaseModel
	Name             string           `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Slug             string           `json:"slug" gorm:"uniqueIndex;not null;size:100" validate:"required,max=100"`
	LicenseKey       string           `json:"license_key" gorm:"uniqueIndex;not null;size:64" validate:"required,max=64"`
	SubscriptionType SubscriptionType `json:"subscription_type" gorm:"type:varchar(50);not null;default:'trial'"`
	MaxRestaurants   int              `json:"max_restaurants" gorm:"not null;default:1"`
	MaxUsers         int              `json:"max_users" gorm:"not null;default:10"`
	ExpiresAt        *time.Time       `json:"expires_at,omitempty"`
	IsActive         bool             `json:"is_active" gorm:"default:true"`
	ContactEmail     string           `json:"contact_email" gorm:"size:255" validate:"omitempty,email,max=255"`
	ContactPhone     string           `json:"contact_phone" gorm:"size:20"`
	Address          string           `json:"address" gorm:"size:500"`
	Settings         json.RawMessage  `json:"settings" gorm:"type:jsonb"`
	Features         json.RawMessage  `json:"features" gorm:"type:jsonb"`

	// Relationships
	Restaurants []Restaurant `json:"restaurants,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Users       []User       `json:"users,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}

// IsExpired reports whether the subscription has lapsed. An expired
// organization fails login regardless of IsActive.
func (o *Organization) IsExpired(now time.Time) bool {
	return o.ExpiresAt != nil && o.ExpiresAt.Before(now)
}
