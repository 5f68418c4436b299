package booking

import (
	"testing"
	"time"

	"bikefix/models"
	"bikefix/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brakePads() []models.BudgetItem {
	return []models.BudgetItem{
		{Description: "Brake pads", Amount: 18.00},
		{Description: "Labour", Amount: 12.00},
	}
}

func TestAddBudgetMovesToWaitingApproval(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusInProgress, 72*time.Hour)

	appt, err := svc.AddAdditionalBudget("appt-1", testWorkshop(), brakePads())
	require.NoError(t, err)

	assert.Equal(t, models.StatusWaitingApproval, appt.Status)
	require.Len(t, appt.AdditionalBudgets, 1)
	entry := appt.AdditionalBudgets[0]
	assert.Equal(t, 30.00, entry.TotalAmount)
	assert.Equal(t, models.BudgetPending, entry.Status)
}

func TestAddBudgetOnlyFromInProgress(t *testing.T) {
	for _, status := range []string{models.StatusPending, models.StatusConfirmed, models.StatusCompleted} {
		svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
		seedAppointment(repo, status, 72*time.Hour)

		_, err := svc.AddAdditionalBudget("appt-1", testWorkshop(), brakePads())
		assertCode(t, err, utils.CodeInvalidTransition)
	}
}

func TestAddBudgetCyclistForbidden(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusInProgress, 72*time.Hour)

	_, err := svc.AddAdditionalBudget("appt-1", testCyclist(), brakePads())
	assertCode(t, err, utils.CodeForbidden)
}

func TestAddBudgetRejectsNonPositiveItems(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusInProgress, 72*time.Hour)

	_, err := svc.AddAdditionalBudget("appt-1", testWorkshop(), []models.BudgetItem{
		{Description: "Free labour", Amount: 0},
	})
	assertCode(t, err, utils.CodeValidation)

	_, err = svc.AddAdditionalBudget("appt-1", testWorkshop(), nil)
	assertCode(t, err, utils.CodeValidation)
}

func TestApproveBudgetRecomputesPricing(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusInProgress, 72*time.Hour)

	_, err := svc.AddAdditionalBudget("appt-1", testWorkshop(), brakePads())
	require.NoError(t, err)

	appt, err := svc.RespondAdditionalBudget("appt-1", testCyclist(), 0, true)
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, appt.Status)
	assert.Equal(t, models.BudgetApproved, appt.AdditionalBudgets[0].Status)
	assert.NotNil(t, appt.AdditionalBudgets[0].RespondedAt)
	assert.Equal(t, 50.00, appt.Pricing.BasePrice)
	assert.Equal(t, 30.00, appt.Pricing.AdditionalPrice)
	assert.Equal(t, 80.00, appt.Pricing.TotalPrice)
	assert.InDelta(t, 8.00, appt.Pricing.PlatformFee, 1e-9)
	assert.InDelta(t, 72.00, appt.Pricing.WorkshopAmount, 1e-9)
}

func TestRejectBudgetLeavesPricingUntouched(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusInProgress, 72*time.Hour)

	_, err := svc.AddAdditionalBudget("appt-1", testWorkshop(), brakePads())
	require.NoError(t, err)

	appt, err := svc.RespondAdditionalBudget("appt-1", testCyclist(), 0, false)
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, appt.Status)
	assert.Equal(t, models.BudgetRejected, appt.AdditionalBudgets[0].Status)
	assert.Equal(t, 0.00, appt.Pricing.AdditionalPrice)
	assert.Equal(t, 50.00, appt.Pricing.TotalPrice)
}

func TestRespondBudgetTwiceConflicts(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusInProgress, 72*time.Hour)

	_, err := svc.AddAdditionalBudget("appt-1", testWorkshop(), brakePads())
	require.NoError(t, err)

	_, err = svc.RespondAdditionalBudget("appt-1", testCyclist(), 0, true)
	require.NoError(t, err)

	// Second budget, second approval round: the first entry stays settled.
	_, err = svc.UpdateStatus("appt-1", testWorkshop(), models.StatusInProgress)
	require.NoError(t, err)
	_, err = svc.AddAdditionalBudget("appt-1", testWorkshop(), []models.BudgetItem{
		{Description: "Chain", Amount: 25.00},
	})
	require.NoError(t, err)

	_, err = svc.RespondAdditionalBudget("appt-1", testCyclist(), 0, true)
	assertCode(t, err, utils.CodeConflict)

	appt, err := svc.RespondAdditionalBudget("appt-1", testCyclist(), 1, true)
	require.NoError(t, err)
	// Only one approval of each entry counts toward the price.
	assert.Equal(t, 55.00, appt.Pricing.AdditionalPrice)
}

func TestRespondBudgetWorkshopForbidden(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusInProgress, 72*time.Hour)

	_, err := svc.AddAdditionalBudget("appt-1", testWorkshop(), brakePads())
	require.NoError(t, err)

	_, err = svc.RespondAdditionalBudget("appt-1", testWorkshop(), 0, true)
	assertCode(t, err, utils.CodeForbidden)
}

func TestRespondBudgetUnknownIndex(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	seedAppointment(repo, models.StatusInProgress, 72*time.Hour)

	_, err := svc.AddAdditionalBudget("appt-1", testWorkshop(), brakePads())
	require.NoError(t, err)

	_, err = svc.RespondAdditionalBudget("appt-1", testCyclist(), 5, true)
	assertCode(t, err, utils.CodeNotFound)
}

func TestRespondBudgetOutsideWaitingApproval(t *testing.T) {
	svc, repo := newTestService([]*models.User{testWorkshop(), testCyclist()}, nil)
	appt := seedAppointment(repo, models.StatusConfirmed, 72*time.Hour)
	appt.AdditionalBudgets = []models.AdditionalBudget{{
		Items: brakePads(), TotalAmount: 30.00, Status: models.BudgetPending, SentAt: time.Now(),
	}}

	_, err := svc.RespondAdditionalBudget("appt-1", testCyclist(), 0, true)
	assertCode(t, err, utils.CodeInvalidTransition)
}
