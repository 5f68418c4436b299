package notification

import "bikefix/models"

// NotificationService delivers in-app notifications and best-effort emails.
// Implementations must never fail the calling operation: delivery problems
// are logged and swallowed.
type NotificationService interface {
	// Notify writes an in-app notification for the user.
	Notify(userID, notifType, message string, data map[string]any)
	// Email sends a transactional email. Best effort.
	Email(to, subject, body string)
	// NotifyAppointment notifies both parties of an appointment event.
	NotifyAppointment(appt *models.Appointment, notifType, message string)
	// ListForUser returns the user's notification feed, most recent first.
	ListForUser(userID string) ([]models.Notification, error)
	// MarkRead flags one of the user's notifications as read.
	MarkRead(id, userID string) error
}
