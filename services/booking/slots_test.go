package booking

import (
	"testing"
	"time"

	"bikefix/models"
	"bikefix/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-09-07 is a Monday.
const mondayDate = "2026-09-07"

func TestSlotCatalogDefaultWhenNoHoursConfigured(t *testing.T) {
	catalog, err := slotCatalogFor(testWorkshop(), mondayDate)
	require.NoError(t, err)

	assert.Len(t, catalog, 16)
	assert.Equal(t, "08:00", catalog[0])
	assert.Equal(t, "11:30", catalog[7])
	assert.Equal(t, "14:00", catalog[8])
	assert.Equal(t, "17:30", catalog[15])
	assert.NotContains(t, catalog, "12:00")
	assert.NotContains(t, catalog, "13:00")
}

func TestSlotCatalogFromWorkingHours(t *testing.T) {
	ws := testWorkshop()
	ws.WorkingHours = map[string]models.WorkingHours{
		"monday": {Open: "10:00", Close: "15:00"},
	}

	catalog, err := slotCatalogFor(ws, mondayDate)
	require.NoError(t, err)

	// Half-hour starts from 10:00 up to but not including 15:00, minus the
	// 12:00-13:00 lunch break.
	assert.Equal(t, []string{
		"10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30",
	}, catalog)
}

func TestSlotCatalogClosedDay(t *testing.T) {
	ws := testWorkshop()
	ws.WorkingHours = map[string]models.WorkingHours{
		"tuesday": {Open: "09:00", Close: "17:00"},
	}

	catalog, err := slotCatalogFor(ws, mondayDate)
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestSlotCatalogInvalidDate(t *testing.T) {
	_, err := slotCatalogFor(testWorkshop(), "07/09/2026")
	assertCode(t, err, utils.CodeValidation)
}

func TestGetAvailableSlotsSplitsOccupied(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)

	for i, held := range []struct {
		slot   string
		status string
	}{
		{"08:00", models.StatusPending},
		{"09:00", models.StatusConfirmed},
		{"10:00", models.StatusInProgress},
		{"11:00", models.StatusCancelled}, // released
	} {
		repo.appts[string(rune('a'+i))] = &models.Appointment{
			ID: string(rune('a' + i)), CyclistID: "cy-1", WorkshopID: "ws-1",
			Date: mondayDate, Time: held.slot, Status: held.status,
		}
	}

	result, err := svc.GetAvailableSlots("ws-1", mondayDate)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"08:00", "09:00", "10:00"}, result.OccupiedSlots)
	assert.Contains(t, result.AvailableSlots, "11:00")
	assert.Len(t, result.AvailableSlots, 13)
}

func TestGetAvailableSlotsUnknownWorkshop(t *testing.T) {
	svc, _ := newTestService([]*models.User{testCyclist()}, nil)

	_, err := svc.GetAvailableSlots("ghost", mondayDate)
	assertCode(t, err, utils.CodeNotFound)
}

func TestGetAvailableSlotsCyclistIsNotAWorkshop(t *testing.T) {
	svc, _ := newTestService([]*models.User{testCyclist()}, nil)

	_, err := svc.GetAvailableSlots("cy-1", mondayDate)
	assertCode(t, err, utils.CodeNotFound)
}

func TestGetAvailableSlotsClosedDayAllEmpty(t *testing.T) {
	ws := testWorkshop()
	ws.WorkingHours = map[string]models.WorkingHours{
		"saturday": {Open: "09:00", Close: "13:00"},
	}
	svc, _ := newTestService([]*models.User{ws, testCyclist()}, nil)

	result, err := svc.GetAvailableSlots("ws-1", mondayDate)
	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)
	assert.Empty(t, result.OccupiedSlots)
}

func TestScheduledAtParsesDateAndTime(t *testing.T) {
	appt := &models.Appointment{Date: "2026-09-07", Time: "14:30"}
	at, err := appt.ScheduledAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 14, 30, 0, 0, time.UTC), at)
}
