package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Restaurant represents a single location owned by exactly one
// organization. Its slug is unique within the owning organization only.
type Restaurant struct {
	BaseModel
	OrganizationID uuid.UUID       `json:"organization_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_restaurants_org_slug" validate:"required"`
	Name           string          `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Slug           string          `json:"slug" gorm:"not null;size:100;uniqueIndex:idx_restaurants_org_slug" validate:"required,max=100"`
	CuisineType    string          `json:"cuisine_type" gorm:"size:100"`
	Address        string          `json:"address" gorm:"size:500"`
	City           string          `json:"city" gorm:"size:100"`
	Country        string          `json:"country" gorm:"size:100"`
	Timezone       string          `json:"timezone" gorm:"size:64;default:'UTC'"`
	MenuStyle      string          `json:"menu_style" gorm:"size:50"`
	IsActive       bool            `json:"is_active" gorm:"default:true"`
	OperatingHours json.RawMessage `json:"operating_hours" gorm:"type:jsonb"`
	Settings       json.RawMessage `json:"settings" gorm:"type:jsonb"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Users        []User       `json:"users,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Restaurant
func (Restaurant) TableName() string {
	return "restaurants"
}
