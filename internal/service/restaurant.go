package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/auth"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"
	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantService handles restaurant directory reads scoped to the
// session user's access set
type RestaurantService struct {
	restaurants repository.RestaurantRepositoryInterface
	users       repository.UserRepositoryInterface
	resolver    *auth.AccessResolver
	validator   *validator.Validate
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(restaurants repository.RestaurantRepositoryInterface, users repository.UserRepositoryInterface, resolver *auth.AccessResolver, validator *validator.Validate) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		users:       users,
		resolver:    resolver,
		validator:   validator,
	}
}

// RestaurantResponse represents the response for restaurant operations
type RestaurantResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	CuisineType string    `json:"cuisine_type,omitempty"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	Timezone    string    `json:"timezone,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// RestaurantListResponse represents the restaurants visible to a session
type RestaurantListResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
	Total       int                  `json:"total"`
}

// ListAccessible returns the restaurants the session user may act
// within, recomputed from the current directory state rather than the
// token's snapshot.
func (s *RestaurantService) ListAccessible(userID uuid.UUID) (*RestaurantListResponse, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	accessible, err := s.resolver.AccessibleRestaurants(user)
	if err != nil {
		return nil, err
	}

	restaurants := make([]RestaurantResponse, 0, len(accessible))
	for idx := range accessible {
		restaurants = append(restaurants, *s.toResponse(&accessible[idx]))
	}

	return &RestaurantListResponse{
		Restaurants: restaurants,
		Total:       len(restaurants),
	}, nil
}

// GetByID returns one restaurant, only if it is in the session user's
// access set. Restaurants outside the set answer with a denial, not a
// not-found, because the id may well exist in another organization.
func (s *RestaurantService) GetByID(userID, restaurantID uuid.UUID) (*RestaurantResponse, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	accessible, err := s.resolver.AccessibleRestaurants(user)
	if err != nil {
		return nil, err
	}

	for idx := range accessible {
		if accessible[idx].ID == restaurantID {
			return s.toResponse(&accessible[idx]), nil
		}
	}

	return nil, apperrors.ErrRestaurantAccessDenied
}

func (s *RestaurantService) toResponse(restaurant *models.Restaurant) *RestaurantResponse {
	return &RestaurantResponse{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		Slug:        restaurant.Slug,
		CuisineType: restaurant.CuisineType,
		City:        restaurant.City,
		Country:     restaurant.Country,
		Timezone:    restaurant.Timezone,
		IsActive:    restaurant.IsActive,
		CreatedAt:   restaurant.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   restaurant.UpdatedAt.Format(time.RFC3339),
	}
}
