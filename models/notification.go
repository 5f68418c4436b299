package models

import "time"

// Notification types.
const (
	NotifAppointmentCreated   = "appointment_created"
	NotifAppointmentStatus    = "appointment_status"
	NotifAppointmentCancelled = "appointment_cancelled"
	NotifBudgetProposed       = "budget_proposed"
	NotifBudgetResolved       = "budget_resolved"
	NotifPaymentUpdate        = "payment_update"
	NotifReviewReceived       = "review_received"
	NotifReminder             = "appointment_reminder"
)

// Notification is an in-app feed entry for one user.
type Notification struct {
	ID        string         `bson:"id" json:"id"`
	UserID    string         `bson:"userId" json:"userId"`
	Type      string         `bson:"type" json:"type"`
	Message   string         `bson:"message" json:"message"`
	Data      map[string]any `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool           `bson:"read" json:"read"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}
