package handlers

import (
	"errors"
	"net/http"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/auth"
	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RestaurantHandler handles HTTP requests for session-scoped restaurant
// reads
type RestaurantHandler struct {
	service *service.RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(service *service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// ListRestaurants handles GET /api/v1/restaurants
// @Summary List accessible restaurants
// @Description List the restaurants the authenticated session user may act within
// @Tags restaurants
// @Accept json
// @Produce json
// @Success 200 {object} service.RestaurantListResponse "Successfully retrieved restaurants"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	restaurants, err := h.service.ListAccessible(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session user no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list restaurants", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// GetRestaurant handles GET /api/v1/restaurants/:id
// @Summary Get restaurant by ID
// @Description Get one restaurant from the session user's accessible set
// @Tags restaurants
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID (UUID)"
// @Success 200 {object} service.RestaurantResponse "Successfully retrieved restaurant"
// @Failure 400 {object} map[string]interface{} "Invalid restaurant ID"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Failure 403 {object} map[string]interface{} "Restaurant not accessible"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID: invalid UUID format"})
		return
	}

	restaurant, err := h.service.GetByID(userID, id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session user no longer exists"})
		case errors.Is(err, apperrors.ErrRestaurantAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get restaurant", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, restaurant)
}
