package handlers

import (
	"net/http"
	"strconv"

	"bikefix/middleware"
	"bikefix/models"
	"bikefix/services/booking"
	"bikefix/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the booking endpoints.
type AppointmentHandler struct {
	Service booking.BookingService
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(svc booking.BookingService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

type createAppointmentRequest struct {
	WorkshopID      string   `json:"workshopId" binding:"required"`
	AppointmentDate string   `json:"appointmentDate" binding:"required,dateonly"`
	AppointmentTime string   `json:"appointmentTime" binding:"required,timeslot"`
	ServiceIDs      []string `json:"requestedServices" binding:"required,min=1"`
	Notes           string   `json:"notes"`
}

// Create books a new appointment for the calling cyclist.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	appt, err := h.Service.CreateAppointment(actor.ID, booking.CreateAppointmentInput{
		WorkshopID: req.WorkshopID,
		Date:       req.AppointmentDate,
		Time:       req.AppointmentTime,
		ServiceIDs: req.ServiceIDs,
		Notes:      req.Notes,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, appt)
}

// List returns the caller's appointments.
func (h *AppointmentHandler) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	appts, err := h.Service.ListForActor(actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, appts)
}

// Get returns one appointment.
func (h *AppointmentHandler) Get(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	appt, err := h.Service.GetAppointment(c.Param("id"), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, appt)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an appointment through its state machine.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	appt, err := h.Service.UpdateStatus(c.Param("id"), actor, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, appt)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel cancels an appointment.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	appt, err := h.Service.CancelAppointment(c.Param("id"), actor, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, appt)
}

type addBudgetRequest struct {
	Items []budgetItemRequest `json:"items" binding:"required,min=1,dive"`
}

type budgetItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

// AddBudget lets the workshop propose an additional budget.
func (h *AppointmentHandler) AddBudget(c *gin.Context) {
	var req addBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	items := make([]models.BudgetItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.BudgetItem{Description: item.Description, Amount: item.Amount})
	}

	actor := middleware.CurrentUser(c)
	appt, err := h.Service.AddAdditionalBudget(c.Param("id"), actor, items)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, appt)
}

// RespondBudget approves or rejects one additional-budget entry.
func (h *AppointmentHandler) RespondBudget(approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			utils.RespondError(c, utils.NewValidationError("invalid budget index"))
			return
		}

		actor := middleware.CurrentUser(c)
		appt, err := h.Service.RespondAdditionalBudget(c.Param("id"), actor, index, approve)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		utils.RespondOK(c, http.StatusOK, appt)
	}
}

// AvailableSlots returns the free and occupied slots for a workshop and date.
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	workshopID := c.Query("workshopId")
	date := c.Query("date")
	if workshopID == "" || date == "" {
		utils.RespondError(c, utils.NewValidationError("workshopId and date are required"))
		return
	}

	slots, err := h.Service.GetAvailableSlots(workshopID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, slots)
}
