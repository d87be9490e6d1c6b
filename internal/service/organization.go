package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"
	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationService handles directory reads for organizations
type OrganizationService struct {
	repo      repository.OrganizationRepositoryInterface
	users     repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(repo repository.OrganizationRepositoryInterface, users repository.UserRepositoryInterface, validator *validator.Validate) *OrganizationService {
	return &OrganizationService{
		repo:      repo,
		users:     users,
		validator: validator,
	}
}

// OrganizationResponse represents the response for organization operations
type OrganizationResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	SubscriptionType string     `json:"subscription_type"`
	MaxRestaurants   int        `json:"max_restaurants"`
	MaxUsers         int        `json:"max_users"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        string     `json:"created_at"`
	UpdatedAt        string     `json:"updated_at"`
}

// MemberResponse is one user row in an organization member listing.
// Password material never leaves the service.
type MemberResponse struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	RestaurantID *uuid.UUID `json:"restaurant_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// MemberListResponse represents a paginated list of organization members
type MemberListResponse struct {
	Members  []MemberResponse `json:"members"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// GetByID retrieves an organization by ID
func (s *OrganizationService) GetByID(id uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return s.toResponse(org), nil
}

// ListMembers retrieves a page of the organization's users
func (s *OrganizationService) ListMembers(orgID uuid.UUID, page, pageSize int) (*MemberListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := s.users.ListByOrganization(orgID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization members: %w", err)
	}

	members := make([]MemberResponse, 0, len(users))
	for idx := range users {
		user := &users[idx]
		members = append(members, MemberResponse{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			FullName:     user.FullName(),
			Role:         string(user.Role),
			RestaurantID: user.RestaurantID,
			IsActive:     user.IsActive,
			LastLogin:    user.LastLogin,
		})
	}

	return &MemberListResponse{
		Members:  members,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *OrganizationService) toResponse(org *models.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:               org.ID,
		Name:             org.Name,
		Slug:             org.Slug,
		SubscriptionType: string(org.SubscriptionType),
		MaxRestaurants:   org.MaxRestaurants,
		MaxUsers:         org.MaxUsers,
		ExpiresAt:        org.ExpiresAt,
		IsActive:         org.IsActive,
		CreatedAt:        org.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        org.UpdatedAt.Format(time.RFC3339),
	}
}
