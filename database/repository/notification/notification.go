package notificationRepo

import "bikefix/models"

// NotificationRepository defines methods for notification data access.
type NotificationRepository interface {
	// Create inserts a new notification.
	Create(notif *models.Notification) error
	// ListByUser returns a user's notifications, most recent first.
	ListByUser(userID string) ([]models.Notification, error)
	// MarkRead flags a notification as read for its owner.
	MarkRead(id, userID string) error
}
