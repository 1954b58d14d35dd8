package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/staynest/service-reservation/internal/application"
	"github.com/staynest/service-reservation/internal/common/auth"
	"github.com/staynest/service-reservation/internal/common/middleware"
	"github.com/staynest/service-reservation/internal/common/response"
)

// PropertyHandler handles HTTP requests for property listings.
type PropertyHandler struct {
	service *application.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(service *application.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// RegisterRoutes registers all property routes on the given router group.
func (h *PropertyHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	public := r.Group("/api/v1/properties")
	{
		public.GET("", h.ListProperties)
		public.GET("/:id", h.GetProperty)
	}

	hosts := r.Group("/api/v1/properties")
	hosts.Use(authMW, middleware.RequireRole(auth.RoleHost))
	{
		hosts.POST("", h.CreateProperty)
		hosts.PATCH("/:id", h.UpdateProperty)
		hosts.POST("/:id/activate", h.ActivateProperty)
		hosts.POST("/:id/deactivate", h.DeactivateProperty)
	}

	mine := r.Group("/api/v1/my/properties")
	mine.Use(authMW, middleware.RequireRole(auth.RoleHost))
	{
		mine.GET("", h.GetMyProperties)
	}
}

// ListProperties handles GET /api/v1/properties.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListActiveProperties(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetProperty handles GET /api/v1/properties/:id.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	result, err := h.service.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateProperty handles POST /api/v1/properties.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req application.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateProperty(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateProperty handles PATCH /api/v1/properties/:id.
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	var req application.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateProperty(c.Request.Context(), middleware.GetActor(c), propertyID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ActivateProperty handles POST /api/v1/properties/:id/activate.
func (h *PropertyHandler) ActivateProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	result, err := h.service.ActivateProperty(c.Request.Context(), middleware.GetActor(c), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeactivateProperty handles POST /api/v1/properties/:id/deactivate.
func (h *PropertyHandler) DeactivateProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	result, err := h.service.DeactivateProperty(c.Request.Context(), middleware.GetActor(c), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetMyProperties handles GET /api/v1/my/properties.
func (h *PropertyHandler) GetMyProperties(c *gin.Context) {
	result, err := h.service.GetMyProperties(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
