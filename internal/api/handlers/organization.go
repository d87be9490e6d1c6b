package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/auth"
	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles HTTP requests for the session user's
// organization
type OrganizationHandler struct {
	service *service.OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(service *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// GetMyOrganization handles GET /api/v1/organizations/me
// @Summary Get the session organization
// @Description Get the organization the authenticated session belongs to
// @Tags organizations
// @Accept json
// @Produce json
// @Success 200 {object} service.OrganizationResponse "Successfully retrieved organization"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /organizations/me [get]
func (h *OrganizationHandler) GetMyOrganization(c *gin.Context) {
	orgID, ok := auth.GetOrganizationID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	org, err := h.service.GetByID(orgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get organization", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, org)
}

// ListMyOrganizationMembers handles GET /api/v1/organizations/me/members
// @Summary List organization members
// @Description List the users of the authenticated session's organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} service.MemberListResponse "Successfully retrieved members"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /organizations/me/members [get]
func (h *OrganizationHandler) ListMyOrganizationMembers(c *gin.Context) {
	orgID, ok := auth.GetOrganizationID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	members, err := h.service.ListMembers(orgID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, members)
}
