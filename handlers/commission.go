package handlers

import (
	"net/http"
	"time"

	"bikefix/middleware"
	"bikefix/models"
	"bikefix/services/commission"
	"bikefix/utils"

	"github.com/gin-gonic/gin"
)

// CommissionHandler exposes the admin-only commission policy endpoints.
type CommissionHandler struct {
	Service commission.CommissionService
}

// NewCommissionHandler creates a CommissionHandler.
func NewCommissionHandler(svc commission.CommissionService) *CommissionHandler {
	return &CommissionHandler{Service: svc}
}

// GetPolicy returns the active commission policy.
func (h *CommissionHandler) GetPolicy(c *gin.Context) {
	cfg, err := h.Service.GetPolicy()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, cfg)
}

type defaultRateRequest struct {
	Rate   *float64 `json:"rate" binding:"required"`
	Reason string   `json:"reason"`
}

// SetDefaultRate changes the fallback commission rate.
func (h *CommissionHandler) SetDefaultRate(c *gin.Context) {
	var req defaultRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	cfg, err := h.Service.SetDefaultRate(actor.ID, *req.Rate, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, cfg)
}

type overrideRequest struct {
	WorkshopID string     `json:"workshopId" binding:"required"`
	Rate       *float64   `json:"rate" binding:"required"`
	ValidFrom  time.Time  `json:"validFrom" binding:"required"`
	ValidTo    *time.Time `json:"validTo"`
	Reason     string     `json:"reason"`
}

// AddOverride appends a workshop-specific rate override.
func (h *CommissionHandler) AddOverride(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	cfg, err := h.Service.AddWorkshopOverride(actor.ID, models.WorkshopOverride{
		WorkshopID: req.WorkshopID,
		Rate:       *req.Rate,
		ValidFrom:  req.ValidFrom,
		ValidTo:    req.ValidTo,
		Reason:     req.Reason,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, cfg)
}

type tiersRequest struct {
	Tiers []tierRequest `json:"tiers" binding:"required,dive"`

	Reason string `json:"reason"`
}

type tierRequest struct {
	MinAmount float64  `json:"minAmount" binding:"gte=0"`
	MaxAmount float64  `json:"maxAmount" binding:"gte=0"`
	Rate      *float64 `json:"rate" binding:"required"`
}

// SetTiers replaces the amount-tiered rate bands.
func (h *CommissionHandler) SetTiers(c *gin.Context) {
	var req tiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	tiers := make([]models.TieredRate, 0, len(req.Tiers))
	for _, t := range req.Tiers {
		tiers = append(tiers, models.TieredRate{
			MinAmount: t.MinAmount,
			MaxAmount: t.MaxAmount,
			Rate:      *t.Rate,
		})
	}

	actor := middleware.CurrentUser(c)
	cfg, err := h.Service.SetTieredRates(actor.ID, tiers, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, cfg)
}

type clampsRequest struct {
	MinimumCommission *float64 `json:"minimumCommission" binding:"required"`
	MaximumCommission *float64 `json:"maximumCommission"`
	Reason            string   `json:"reason"`
}

// SetClamps changes the commission floor and optional ceiling.
func (h *CommissionHandler) SetClamps(c *gin.Context) {
	var req clampsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	cfg, err := h.Service.SetClamps(actor.ID, *req.MinimumCommission, req.MaximumCommission, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, cfg)
}

// GetHistory returns the policy change audit trail.
func (h *CommissionHandler) GetHistory(c *gin.Context) {
	history, err := h.Service.GetHistory()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, history)
}
