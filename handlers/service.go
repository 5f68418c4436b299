package handlers

import (
	"net/http"

	"bikefix/middleware"
	"bikefix/services/catalog"
	"bikefix/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler exposes the workshop service-catalog endpoints.
type ServiceHandler struct {
	Service catalog.CatalogService
}

// NewServiceHandler creates a ServiceHandler.
func NewServiceHandler(svc catalog.CatalogService) *ServiceHandler {
	return &ServiceHandler{Service: svc}
}

type serviceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DurationMinutes int     `json:"durationMinutes" binding:"omitempty,gte=0"`
	Active          *bool   `json:"active"`
}

// Create adds a service to the calling workshop's catalog.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	svc, err := h.Service.CreateService(actor, catalog.ServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          req.Active,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, svc)
}

// Update edits one of the calling workshop's services.
func (h *ServiceHandler) Update(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	svc, err := h.Service.UpdateService(c.Param("id"), actor, catalog.ServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          req.Active,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, svc)
}

// Delete removes one of the calling workshop's services.
func (h *ServiceHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.Service.DeleteService(c.Param("id"), actor); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "service deleted", nil)
}

// ListByWorkshop returns a workshop's catalog.
func (h *ServiceHandler) ListByWorkshop(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	services, err := h.Service.ListByWorkshop(c.Param("id"), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, services)
}
