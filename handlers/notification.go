package handlers

import (
	"net/http"

	"bikefix/middleware"
	"bikefix/services/notification"
	"bikefix/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the in-app notification feed.
type NotificationHandler struct {
	Service notification.NotificationService
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// List returns the caller's notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	notifs, err := h.Service.ListForUser(actor.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, notifs)
}

// MarkRead flags one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.Service.MarkRead(c.Param("id"), actor.ID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "notification marked read", nil)
}
