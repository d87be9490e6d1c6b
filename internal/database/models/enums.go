package models

// UserRole represents a user's position in the fixed role hierarchy,
// listed in descending authority.
type UserRole string

const (
	RoleOrgAdmin          UserRole = "org_admin"
	RoleRestaurantManager UserRole = "restaurant_manager"
	RoleHeadChef          UserRole = "head_chef"
	RoleSousChef          UserRole = "sous_chef"
	RoleLineCook          UserRole = "line_cook"
	RoleStaff             UserRole = "staff"
)

// SubscriptionType defines the billing tier of an organization
type SubscriptionType string

const (
	SubscriptionTrial        SubscriptionType = "trial"
	SubscriptionProfessional SubscriptionType = "professional"
	SubscriptionEnterprise   SubscriptionType = "enterprise"
)

// ResourceScope defines the visibility tier of an owned resource.
// It is read by downstream collaborators, not enforced here.
type ResourceScope string

const (
	ScopeOrganization ResourceScope = "organization"
	ScopeRestaurant   ResourceScope = "restaurant"
	ScopePrivate      ResourceScope = "private"
)

// IsValid checks if the UserRole is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleOrgAdmin, RoleRestaurantManager, RoleHeadChef, RoleSousChef, RoleLineCook, RoleStaff:
		return true
	}
	return false
}

// CanManageOrganization reports whether the role carries organization-wide
// administration rights. Only org_admin may span restaurants.
func (r UserRole) CanManageOrganization() bool {
	return r == RoleOrgAdmin
}

// CanManageKitchen reports whether the role may write and manage
// restaurant-level resources.
func (r UserRole) CanManageKitchen() bool {
	switch r {
	case RoleOrgAdmin, RoleRestaurantManager, RoleHeadChef:
		return true
	}
	return false
}

// IsValid checks if the SubscriptionType is valid
func (s SubscriptionType) IsValid() bool {
	switch s {
	case SubscriptionTrial, SubscriptionProfessional, SubscriptionEnterprise:
		return true
	}
	return false
}

// IsValid checks if the ResourceScope is valid
func (s ResourceScope) IsValid() bool {
	switch s {
	case ScopeOrganization, ScopeRestaurant, ScopePrivate:
		return true
	}
	return false
}
