package handlers

import (
	"net/http"

	"bikefix/middleware"
	"bikefix/models"
	"bikefix/services/review"
	"bikefix/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes the review endpoints.
type ReviewHandler struct {
	Service review.ReviewService
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

type createReviewRequest struct {
	AppointmentID  string `json:"appointmentId" binding:"required"`
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	ServiceQuality int    `json:"serviceQuality" binding:"omitempty,min=1,max=5"`
	PriceValue     int    `json:"priceValue" binding:"omitempty,min=1,max=5"`
	Punctuality    int    `json:"punctuality" binding:"omitempty,min=1,max=5"`
	Communication  int    `json:"communication" binding:"omitempty,min=1,max=5"`
	Comment        string `json:"comment"`
}

// Create writes a review for a completed appointment.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	r, err := h.Service.CreateReview(actor, review.CreateReviewInput{
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		SubRatings: models.SubRatings{
			ServiceQuality: req.ServiceQuality,
			PriceValue:     req.PriceValue,
			Punctuality:    req.Punctuality,
			Communication:  req.Communication,
		},
		Comment: req.Comment,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, r)
}

// ListByWorkshop returns a workshop's active reviews.
func (h *ReviewHandler) ListByWorkshop(c *gin.Context) {
	reviews, err := h.Service.ListByWorkshop(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, reviews)
}

type respondRequest struct {
	Text string `json:"text" binding:"required"`
}

// Respond records the workshop's reply to a review.
func (h *ReviewHandler) Respond(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	r, err := h.Service.Respond(c.Param("id"), actor, req.Text)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, r)
}

type voteRequest struct {
	Helpful *bool `json:"helpful" binding:"required"`
}

// Vote records a helpful / not-helpful vote.
func (h *ReviewHandler) Vote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	r, err := h.Service.Vote(c.Param("id"), actor, *req.Helpful)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, r)
}

type reportRequest struct {
	Reason string `json:"reason"`
}

// Report flags a review for moderation.
func (h *ReviewHandler) Report(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	actor := middleware.CurrentUser(c)
	r, err := h.Service.Report(c.Param("id"), actor, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, r)
}
