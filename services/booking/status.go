package booking

import (
	"time"

	"bikefix/models"
	"bikefix/utils"
)

// allowedTransitions is the appointment state machine. Any pair not listed
// here is rejected. completed, cancelled and rejected are terminal.
var allowedTransitions = map[string][]string{
	models.StatusPending:         {models.StatusConfirmed, models.StatusCancelled, models.StatusRejected},
	models.StatusConfirmed:       {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress:      {models.StatusCompleted, models.StatusWaitingApproval, models.StatusCancelled},
	models.StatusWaitingApproval: {models.StatusConfirmed},
}

// CanTransition reports whether from → to is present in the transition table.
func CanTransition(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a declared appointment status.
func IsValidStatus(s string) bool {
	switch s {
	case models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
		models.StatusWaitingApproval, models.StatusCompleted,
		models.StatusCancelled, models.StatusRejected:
		return true
	}
	return false
}

// workshopOnlyTargets are transitions the cyclist may not trigger.
var workshopOnlyTargets = map[string]bool{
	models.StatusConfirmed:  true,
	models.StatusInProgress: true,
	models.StatusCompleted:  true,
	models.StatusRejected:   true,
}

// UpdateStatus moves an appointment through the state machine. The actor must
// be one of the appointment's parties; progress transitions are reserved to
// the workshop. Cancellation goes through CancelAppointment so the
// cancellation window rule applies on every path.
func (s *DefaultBookingService) UpdateStatus(appointmentID string, actor *models.User, newStatus string) (*models.Appointment, error) {
	if !IsValidStatus(newStatus) {
		return nil, utils.NewValidationError("unknown status %q", newStatus)
	}

	if newStatus == models.StatusCancelled {
		return s.CancelAppointment(appointmentID, actor, "")
	}

	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if actor.ID != appt.CyclistID && actor.ID != appt.WorkshopID {
		return nil, utils.NewForbiddenError("you are not a party to this appointment")
	}
	if !CanTransition(appt.Status, newStatus) {
		return nil, utils.NewInvalidTransitionError(appt.Status, newStatus)
	}
	if workshopOnlyTargets[newStatus] && actor.ID != appt.WorkshopID {
		return nil, utils.NewForbiddenError("only the workshop can move the appointment to %q", newStatus)
	}

	appt.Status = newStatus
	if newStatus == models.StatusCompleted {
		now := time.Now()
		appt.CompletedAt = &now
	}
	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}

	s.invalidateSlotCache(appt.WorkshopID, appt.Date)
	s.Notifier.NotifyAppointment(appt, models.NotifAppointmentStatus,
		"Appointment is now "+newStatus)

	if newStatus == models.StatusConfirmed && s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(appt); err != nil {
			utilsLogWarn("failed to schedule reminder", err)
		}
	}
	return appt, nil
}
