package payment

import (
	"context"
	"time"

	"bikefix/models"
	"bikefix/utils"

	"go.uber.org/zap"
)

// Processor event types the service reacts to. Everything else is ignored.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

const eventGuardTTL = 24 * time.Hour

// HandleEvent applies one webhook event to the matching payment. Updates are
// keyed by the external payment id and only move pending payments, so
// out-of-order or repeated deliveries cannot corrupt state; a Redis guard
// additionally short-circuits exact redeliveries.
func (s *DefaultPaymentService) HandleEvent(eventID, eventType, externalID string) error {
	if s.alreadyProcessed(eventID) {
		utils.GetLogger().Debug("skipping duplicate webhook event", zap.String("eventId", eventID))
		return nil
	}

	var newStatus string
	switch eventType {
	case EventPaymentSucceeded:
		newStatus = models.PaymentApproved
	case EventPaymentFailed:
		newStatus = models.PaymentRejected
	default:
		return nil
	}

	payment, err := s.Repo.GetByExternalID(externalID)
	if err != nil {
		return err
	}
	if payment.Status != models.PaymentPending {
		// Already settled by an earlier event.
		return nil
	}

	payment.Status = newStatus
	if err := s.Repo.Update(payment); err != nil {
		return err
	}

	message := "Your payment failed"
	if newStatus == models.PaymentApproved {
		message = "Your payment was confirmed"
	}
	s.Notifier.Notify(payment.CyclistID, models.NotifPaymentUpdate, message,
		map[string]any{"paymentId": payment.ID, "status": newStatus})
	return nil
}

// alreadyProcessed marks the event id as seen and reports whether it had
// been seen before. Best effort: with no cache configured every event is
// treated as new and the status guard above carries idempotency alone.
func (s *DefaultPaymentService) alreadyProcessed(eventID string) bool {
	if s.Cache == nil || eventID == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ok, err := s.Cache.SetNX(ctx, "payments:event:"+eventID, 1, eventGuardTTL).Result()
	if err != nil {
		return false
	}
	return !ok
}
