package booking

import (
	"time"

	"bikefix/models"
	"bikefix/utils"
)

// CancellationWindow is how far ahead of the slot a cyclist must cancel.
const CancellationWindow = 24 * time.Hour

// cancellableFrom lists the statuses each role may cancel from. The workshop
// may still abort an in-progress job; the cyclist may not.
var (
	cyclistCancellable  = map[string]bool{models.StatusPending: true, models.StatusConfirmed: true}
	workshopCancellable = map[string]bool{
		models.StatusPending:    true,
		models.StatusConfirmed:  true,
		models.StatusInProgress: true,
	}
)

// CanBeCancelledBy reports whether the actor may cancel the appointment right
// now, applying the 24-hour window to cyclists. Admins bypass the window.
func CanBeCancelledBy(appt *models.Appointment, actor *models.User, now time.Time) error {
	if actor.Role == models.RoleAdmin {
		if !workshopCancellable[appt.Status] {
			return utils.NewInvalidTransitionError(appt.Status, models.StatusCancelled)
		}
		return nil
	}

	switch actor.ID {
	case appt.CyclistID:
		if !cyclistCancellable[appt.Status] {
			return utils.NewInvalidTransitionError(appt.Status, models.StatusCancelled)
		}
		scheduledAt, err := appt.ScheduledAt()
		if err != nil {
			return utils.NewInternalError("appointment has an invalid schedule", err)
		}
		if scheduledAt.Sub(now) < CancellationWindow {
			return utils.NewForbiddenError("appointments can only be cancelled more than 24 hours in advance")
		}
	case appt.WorkshopID:
		if !workshopCancellable[appt.Status] {
			return utils.NewInvalidTransitionError(appt.Status, models.StatusCancelled)
		}
	default:
		return utils.NewForbiddenError("you are not a party to this appointment")
	}
	return nil
}

// CancelAppointment cancels an appointment on behalf of the actor, recording
// who cancelled and why.
func (s *DefaultBookingService) CancelAppointment(appointmentID string, actor *models.User, reason string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if err := CanBeCancelledBy(appt, actor, time.Now()); err != nil {
		return nil, err
	}

	appt.Status = models.StatusCancelled
	appt.CancelledBy = actor.ID
	appt.CancellationNote = reason
	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}

	s.invalidateSlotCache(appt.WorkshopID, appt.Date)
	s.Notifier.NotifyAppointment(appt, models.NotifAppointmentCancelled,
		"Appointment on "+appt.Date+" "+appt.Time+" was cancelled")
	return appt, nil
}
