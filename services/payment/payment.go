package payment

import (
	"math"
	"time"

	"bikefix/config"
	"bikefix/models"
	"bikefix/utils"

	"github.com/google/uuid"
)

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreatePreference opens a payment with the processor for the appointment's
// current total and persists the pending payment record keyed by the
// processor's id.
func (s *DefaultPaymentService) CreatePreference(appointmentID string, actor *models.User) (*models.Payment, error) {
	appt, err := s.AppointmentRepo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if actor.ID != appt.CyclistID {
		return nil, utils.NewForbiddenError("only the booking cyclist can pay for an appointment")
	}
	if appt.Status == models.StatusCancelled || appt.Status == models.StatusRejected {
		return nil, utils.NewValidationError("cannot pay for a %s appointment", appt.Status)
	}

	if existing, err := s.Repo.GetByAppointment(appointmentID); err != nil {
		return nil, err
	} else if existing != nil && existing.Status != models.PaymentRejected {
		return nil, utils.NewConflictError("a payment already exists for this appointment")
	}

	currency := config.AppConfig.Currency
	externalID, clientSecret, err := s.Gateway.CreateIntent(
		toCents(appt.Pricing.TotalPrice), currency,
		map[string]string{
			"appointmentId": appt.ID,
			"workshopId":    appt.WorkshopID,
		})
	if err != nil {
		return nil, utils.NewInternalError("payment processor rejected the request", err)
	}

	now := time.Now()
	payment := &models.Payment{
		ID:             uuid.New().String(),
		AppointmentID:  appt.ID,
		CyclistID:      appt.CyclistID,
		WorkshopID:     appt.WorkshopID,
		Amount:         appt.Pricing.TotalPrice,
		PlatformFee:    appt.Pricing.PlatformFee,
		WorkshopAmount: appt.Pricing.WorkshopAmount,
		Currency:       currency,
		Status:         models.PaymentPending,
		ExternalID:     externalID,
		ClientSecret:   clientSecret,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetStatus returns a payment, restricted to its parties and admins.
func (s *DefaultPaymentService) GetStatus(paymentID string, actor *models.User) (*models.Payment, error) {
	payment, err := s.Repo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && actor.ID != payment.CyclistID && actor.ID != payment.WorkshopID {
		return nil, utils.NewForbiddenError("you are not a party to this payment")
	}
	return payment, nil
}

// Refund issues a refund for an approved payment. Cyclists may only refund
// within the cancellation window of the appointment; admins may always.
func (s *DefaultPaymentService) Refund(paymentID string, actor *models.User) (*models.Payment, error) {
	payment, err := s.Repo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && actor.ID != payment.CyclistID {
		return nil, utils.NewForbiddenError("only the paying cyclist or an admin can request a refund")
	}
	if payment.Status == models.PaymentRefunded {
		return payment, nil
	}
	if payment.Status != models.PaymentApproved {
		return nil, utils.NewValidationError("only approved payments can be refunded")
	}

	if actor.Role != models.RoleAdmin {
		appt, err := s.AppointmentRepo.GetByID(payment.AppointmentID)
		if err != nil {
			return nil, err
		}
		scheduledAt, err := appt.ScheduledAt()
		if err != nil {
			return nil, utils.NewInternalError("appointment has an invalid schedule", err)
		}
		if time.Until(scheduledAt) < 24*time.Hour {
			return nil, utils.NewForbiddenError("refunds are only available more than 24 hours before the appointment")
		}
	}

	refundID, err := s.Gateway.CreateRefund(payment.ExternalID)
	if err != nil {
		return nil, utils.NewInternalError("payment processor rejected the refund", err)
	}

	payment.Status = models.PaymentRefunded
	payment.RefundID = refundID
	if err := s.Repo.Update(payment); err != nil {
		return nil, err
	}

	s.Notifier.Notify(payment.CyclistID, models.NotifPaymentUpdate,
		"Your payment was refunded", map[string]any{"paymentId": payment.ID})
	return payment, nil
}
