package paymentRepo

import "bikefix/models"

// PaymentRepository defines methods for payment data access.
type PaymentRepository interface {
	// Create inserts a new payment record.
	Create(payment *models.Payment) error
	// GetByID retrieves a payment by its unique ID.
	GetByID(id string) (*models.Payment, error)
	// GetByExternalID retrieves a payment by its external processor ID.
	GetByExternalID(externalID string) (*models.Payment, error)
	// GetByAppointment retrieves the payment for an appointment, or nil when
	// none exists.
	GetByAppointment(appointmentID string) (*models.Payment, error)
	// Update replaces an existing payment document.
	Update(payment *models.Payment) error
}
