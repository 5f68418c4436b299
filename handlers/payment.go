package handlers

import (
	"encoding/json"
	"net/http"

	"bikefix/config"
	"bikefix/middleware"
	"bikefix/services/payment"
	"bikefix/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment endpoints.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

type createPreferenceRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}

// CreatePreference opens a payment for an appointment and returns the
// client secret the app needs to complete it.
func (h *PaymentHandler) CreatePreference(c *gin.Context) {
	var req createPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	p, err := h.Service.CreatePreference(req.AppointmentID, actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, gin.H{
		"payment":      p,
		"clientSecret": p.ClientSecret,
	})
}

// Webhook ingests Stripe events. Signature-verified, unauthenticated route.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("unreadable payload"))
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"),
		config.AppConfig.StripeWebhookSecret)
	if err != nil {
		utils.GetLogger().Warn("rejected webhook with bad signature", zap.Error(err))
		utils.RespondError(c, utils.NewValidationError("invalid signature"))
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		utils.RespondError(c, utils.NewValidationError("malformed event payload"))
		return
	}

	if err := h.Service.HandleEvent(event.ID, string(event.Type), intent.ID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "event processed", nil)
}

// GetStatus returns one payment, visible to its parties and admins.
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	p, err := h.Service.GetStatus(c.Param("id"), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, p)
}

// Refund refunds an approved payment.
func (h *PaymentHandler) Refund(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	p, err := h.Service.Refund(c.Param("id"), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, p)
}
