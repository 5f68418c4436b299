package handlers

import (
	"net/http"

	"bikefix/middleware"
	"bikefix/models"
	"bikefix/services/user"
	"bikefix/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	Service user.UserService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

type registerRequest struct {
	Role        string `json:"role" binding:"required,oneof=cyclist workshop"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// Register creates a new cyclist or workshop account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	resp, err := h.Service.Register(user.RegisterInput{
		Role:        req.Role,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, resp)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	resp, err := h.Service.Authenticate(req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, resp)
}

// Logout revokes the caller's token.
func (h *AuthHandler) Logout(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.Service.RevokeToken(actor.ID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "signed out", nil)
}

// GetProfile returns the caller's own profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	utils.RespondOK(c, http.StatusOK, actor)
}

type profileUpdateRequest struct {
	Name         *string                        `json:"name"`
	PhoneNumber  *string                        `json:"phoneNumber"`
	Address      *string                        `json:"address"`
	Description  *string                        `json:"description"`
	WorkingHours map[string]workingHoursRequest `json:"workingHours"`
}

type workingHoursRequest struct {
	Open  string `json:"open" binding:"required,timeslot"`
	Close string `json:"close" binding:"required,timeslot"`
}

// UpdateProfile updates the caller's own profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request: %v", err))
		return
	}

	updates := user.ProfileUpdates{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Description: req.Description,
	}
	if req.WorkingHours != nil {
		updates.WorkingHours = make(map[string]models.WorkingHours, len(req.WorkingHours))
		for day, hours := range req.WorkingHours {
			updates.WorkingHours[day] = models.WorkingHours{Open: hours.Open, Close: hours.Close}
		}
	}

	actor := middleware.CurrentUser(c)
	updated, err := h.Service.UpdateProfile(actor.ID, updates)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, updated)
}

// ListWorkshops returns all registered workshops.
func (h *AuthHandler) ListWorkshops(c *gin.Context) {
	workshops, err := h.Service.ListWorkshops()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, workshops)
}
