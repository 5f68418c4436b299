package models

import "time"

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
	PaymentRefunded = "refunded"
)

// Payment tracks the money side of one appointment. ExternalID is the Stripe
// PaymentIntent id; webhook updates are keyed by it, which makes repeated
// delivery of the same event a no-op.
type Payment struct {
	ID            string `bson:"id" json:"id"`
	AppointmentID string `bson:"appointmentId" json:"appointmentId"`
	CyclistID     string `bson:"cyclistId" json:"cyclistId"`
	WorkshopID    string `bson:"workshopId" json:"workshopId"`

	Amount         float64 `bson:"amount" json:"amount"`
	PlatformFee    float64 `bson:"platformFee" json:"platformFee"`
	WorkshopAmount float64 `bson:"workshopAmount" json:"workshopAmount"`
	Currency       string  `bson:"currency" json:"currency"`

	Status       string `bson:"status" json:"status"`
	ExternalID   string `bson:"externalId" json:"externalId"`
	ClientSecret string `bson:"-" json:"clientSecret,omitempty"`
	RefundID     string `bson:"refundId,omitempty" json:"refundId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
