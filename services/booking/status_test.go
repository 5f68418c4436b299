package booking

import (
	"testing"
	"time"

	"bikefix/models"
	"bikefix/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []string{
	models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
	models.StatusWaitingApproval, models.StatusCompleted,
	models.StatusCancelled, models.StatusRejected,
}

func TestTransitionTable(t *testing.T) {
	allowed := map[[2]string]bool{
		{models.StatusPending, models.StatusConfirmed}:          true,
		{models.StatusPending, models.StatusCancelled}:          true,
		{models.StatusPending, models.StatusRejected}:           true,
		{models.StatusConfirmed, models.StatusInProgress}:       true,
		{models.StatusConfirmed, models.StatusCancelled}:        true,
		{models.StatusInProgress, models.StatusCompleted}:       true,
		{models.StatusInProgress, models.StatusWaitingApproval}: true,
		{models.StatusInProgress, models.StatusCancelled}:       true,
		{models.StatusWaitingApproval, models.StatusConfirmed}:  true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range []string{models.StatusCompleted, models.StatusCancelled, models.StatusRejected} {
		for _, to := range allStatuses {
			assert.False(t, CanTransition(from, to), "%s must be terminal", from)
		}
	}
}

// seedAppointment plants an appointment in the repo in the given status.
func seedAppointment(repo *fakeAppointmentRepo, status string, ahead time.Duration) *models.Appointment {
	date, slot := futureSlot(ahead)
	appt := &models.Appointment{
		ID:         "appt-1",
		CyclistID:  "cy-1",
		WorkshopID: "ws-1",
		Date:       date,
		Time:       slot,
		Status:     status,
		Pricing:    models.Pricing{BasePrice: 50, TotalPrice: 50, PlatformFeeRate: 0.10, PlatformFee: 5, WorkshopAmount: 45},
	}
	repo.appts[appt.ID] = appt
	return appt
}

func TestUpdateStatusCompletedIsFinal(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusCompleted, 72*time.Hour)

	for _, to := range []string{models.StatusPending, models.StatusConfirmed, models.StatusInProgress} {
		_, err := svc.UpdateStatus("appt-1", testWorkshop(), to)
		assertCode(t, err, utils.CodeInvalidTransition)
	}
}

func TestUpdateStatusWorkshopConfirms(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusPending, 72*time.Hour)

	appt, err := svc.UpdateStatus("appt-1", testWorkshop(), models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, appt.Status)
}

func TestUpdateStatusCyclistCannotConfirm(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusPending, 72*time.Hour)

	_, err := svc.UpdateStatus("appt-1", testCyclist(), models.StatusConfirmed)
	assertCode(t, err, utils.CodeForbidden)
}

func TestUpdateStatusStrangerForbidden(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusPending, 72*time.Hour)

	stranger := &models.User{ID: "ws-9", Role: models.RoleWorkshop}
	_, err := svc.UpdateStatus("appt-1", stranger, models.StatusConfirmed)
	assertCode(t, err, utils.CodeForbidden)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusPending, 72*time.Hour)

	_, err := svc.UpdateStatus("appt-1", testWorkshop(), "shipped")
	assertCode(t, err, utils.CodeValidation)
}

func TestUpdateStatusCompletedStampsTimestamp(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusInProgress, 72*time.Hour)

	appt, err := svc.UpdateStatus("appt-1", testWorkshop(), models.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, appt.CompletedAt)
	assert.WithinDuration(t, time.Now(), *appt.CompletedAt, time.Minute)
}

func TestUpdateStatusConfirmSchedulesReminder(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	reminders := &recordingReminders{}
	svc.Reminders = reminders
	seedAppointment(repo, models.StatusPending, 72*time.Hour)

	_, err := svc.UpdateStatus("appt-1", testWorkshop(), models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []string{"appt-1"}, reminders.scheduled)
}

func TestUpdateStatusPendingRejected(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusPending, 72*time.Hour)

	appt, err := svc.UpdateStatus("appt-1", testWorkshop(), models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, appt.Status)
	assert.True(t, appt.IsTerminal())
}

func TestUpdateStatusWaitingApprovalBackToConfirmed(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusWaitingApproval, 72*time.Hour)

	appt, err := svc.UpdateStatus("appt-1", testWorkshop(), models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, appt.Status)
}
