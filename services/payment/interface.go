package payment

import (
	appointmentRepo "bikefix/database/repository/appointment"
	paymentRepo "bikefix/database/repository/payment"
	"bikefix/models"
	"bikefix/services/notification"

	"github.com/go-redis/redis/v8"
)

// Gateway abstracts the external payment processor so the service can be
// exercised without network calls.
type Gateway interface {
	// CreateIntent opens a payment for the given amount in minor units and
	// returns the processor's id and client secret.
	CreateIntent(amountCents int64, currency string, metadata map[string]string) (id, clientSecret string, err error)
	// CreateRefund refunds a previously captured intent and returns the
	// refund id.
	CreateRefund(intentID string) (string, error)
}

// PaymentService wraps the payment processor: preference creation for an
// appointment, webhook ingestion, status reads and refunds.
type PaymentService interface {
	CreatePreference(appointmentID string, actor *models.User) (*models.Payment, error)
	// HandleEvent applies one processor event. Events are keyed by the
	// external payment id, so redelivery of the same event is a no-op.
	HandleEvent(eventID, eventType, externalID string) error
	GetStatus(paymentID string, actor *models.User) (*models.Payment, error)
	Refund(paymentID string, actor *models.User) (*models.Payment, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Repo            paymentRepo.PaymentRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	Gateway         Gateway
	Notifier        notification.NotificationService
	Cache           *redis.Client // optional, processed-event guard
}
