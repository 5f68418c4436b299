package worker

import (
	"encoding/json"
	"time"

	"bikefix/models"

	"github.com/hibiken/asynq"
)

// Task type names.
const (
	TypeRatingAggregate = "review:aggregate"
	TypeReminderSend    = "reminder:send"
)

// RatingAggregatePayload asks the worker to rebuild one workshop's rating.
type RatingAggregatePayload struct {
	WorkshopID string `json:"workshopId"`
}

// ReminderPayload carries a day-before appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	CyclistID     string `json:"cyclistId"`
	WorkshopID    string `json:"workshopId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// Enqueuer submits background tasks. It satisfies the queue interfaces the
// review and booking services depend on.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer wraps an asynq client.
func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueRatingAggregate schedules a rating recompute for the workshop.
func (e *Enqueuer) EnqueueRatingAggregate(workshopID string) error {
	payload, err := json.Marshal(RatingAggregatePayload{WorkshopID: workshopID})
	if err != nil {
		return err
	}
	_, err = e.client.Enqueue(asynq.NewTask(TypeRatingAggregate, payload))
	return err
}

// ScheduleReminder enqueues a reminder 24 hours before the appointment slot.
// Appointments closer than that get no reminder.
func (e *Enqueuer) ScheduleReminder(appt *models.Appointment) error {
	scheduledAt, err := appt.ScheduledAt()
	if err != nil {
		return err
	}
	fireAt := scheduledAt.Add(-24 * time.Hour)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{
		AppointmentID: appt.ID,
		CyclistID:     appt.CyclistID,
		WorkshopID:    appt.WorkshopID,
		Date:          appt.Date,
		Time:          appt.Time,
	})
	if err != nil {
		return err
	}
	_, err = e.client.Enqueue(asynq.NewTask(TypeReminderSend, payload), asynq.ProcessAt(fireAt))
	return err
}
