package commission

import (
	"errors"
	"testing"
	"time"

	"bikefix/models"
	"bikefix/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommissionRepo keeps the active config in memory.
type fakeCommissionRepo struct {
	cfg *models.CommissionConfig
}

func (r *fakeCommissionRepo) GetActive() (*models.CommissionConfig, error) {
	if r.cfg == nil {
		r.cfg = &models.CommissionConfig{
			ID:          "cfg-1",
			DefaultRate: 0.10,
			Active:      true,
		}
	}
	return r.cfg, nil
}

func (r *fakeCommissionRepo) Update(cfg *models.CommissionConfig) error {
	r.cfg = cfg
	return nil
}

func newPolicyService() (*DefaultCommissionService, *fakeCommissionRepo) {
	repo := &fakeCommissionRepo{}
	return &DefaultCommissionService{Repo: repo}, repo
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *utils.APIError
	require.True(t, errors.As(err, &apiErr), "expected an APIError, got %v", err)
	assert.Equal(t, code, apiErr.Code)
}

func TestSetDefaultRateRecordsHistory(t *testing.T) {
	svc, _ := newPolicyService()

	cfg, err := svc.SetDefaultRate("admin-1", 0.12, "seasonal adjustment")
	require.NoError(t, err)

	assert.Equal(t, 0.12, cfg.DefaultRate)
	require.Len(t, cfg.ChangeHistory, 1)
	change := cfg.ChangeHistory[0]
	assert.Equal(t, "admin-1", change.ChangedBy)
	assert.Equal(t, 0.10, change.PreviousRate)
	assert.Equal(t, 0.12, change.NewRate)
	assert.Equal(t, "seasonal adjustment", change.Reason)
}

func TestSetDefaultRateRejectsOutOfRange(t *testing.T) {
	svc, repo := newPolicyService()

	_, err := svc.SetDefaultRate("admin-1", 1.5, "")
	assertCode(t, err, utils.CodeValidation)

	_, err = svc.SetDefaultRate("admin-1", -0.1, "")
	assertCode(t, err, utils.CodeValidation)

	// Nothing was persisted.
	cfg, _ := repo.GetActive()
	assert.Equal(t, 0.10, cfg.DefaultRate)
	assert.Empty(t, cfg.ChangeHistory)
}

func TestAddWorkshopOverrideValidation(t *testing.T) {
	svc, _ := newPolicyService()

	_, err := svc.AddWorkshopOverride("admin-1", models.WorkshopOverride{Rate: 0.05})
	assertCode(t, err, utils.CodeValidation) // missing workshopId

	before := time.Now()
	after := before.Add(-time.Hour)
	_, err = svc.AddWorkshopOverride("admin-1", models.WorkshopOverride{
		WorkshopID: "ws-1", Rate: 0.05, ValidFrom: before, ValidTo: &after,
	})
	assertCode(t, err, utils.CodeValidation) // window ends before it starts
}

func TestAddWorkshopOverrideAppends(t *testing.T) {
	svc, _ := newPolicyService()

	cfg, err := svc.AddWorkshopOverride("admin-1", models.WorkshopOverride{
		WorkshopID: "ws-1",
		Rate:       0.05,
		ValidFrom:  time.Now().Add(-time.Hour),
		Reason:     "launch partner",
	})
	require.NoError(t, err)

	require.Len(t, cfg.WorkshopOverrides, 1)
	assert.Equal(t, "ws-1", cfg.WorkshopOverrides[0].WorkshopID)
	require.Len(t, cfg.ChangeHistory, 1)
	assert.Equal(t, 0.05, cfg.ChangeHistory[0].NewRate)

	rate, err := svc.GetRateForWorkshop("ws-1", 100)
	require.NoError(t, err)
	assert.Equal(t, 0.05, rate)
}

func TestSetTieredRatesRejectsOverlap(t *testing.T) {
	svc, repo := newPolicyService()

	_, err := svc.SetTieredRates("admin-1", []models.TieredRate{
		{MinAmount: 0, MaxAmount: 100, Rate: 0.12},
		{MinAmount: 100, MaxAmount: 500, Rate: 0.08},
	}, "")
	assertCode(t, err, utils.CodeValidation)

	cfg, _ := repo.GetActive()
	assert.Empty(t, cfg.TieredRates)
}

func TestSetTieredRatesRejectsBadBounds(t *testing.T) {
	svc, _ := newPolicyService()

	_, err := svc.SetTieredRates("admin-1", []models.TieredRate{
		{MinAmount: 100, MaxAmount: 50, Rate: 0.1},
	}, "")
	assertCode(t, err, utils.CodeValidation)
}

func TestSetTieredRatesReplaces(t *testing.T) {
	svc, _ := newPolicyService()

	_, err := svc.SetTieredRates("admin-1", []models.TieredRate{
		{MinAmount: 0, MaxAmount: 100, Rate: 0.12},
	}, "first")
	require.NoError(t, err)

	cfg, err := svc.SetTieredRates("admin-1", []models.TieredRate{
		{MinAmount: 0, MaxAmount: 50, Rate: 0.15},
		{MinAmount: 50.01, MaxAmount: 200, Rate: 0.09},
	}, "second")
	require.NoError(t, err)

	assert.Len(t, cfg.TieredRates, 2)
	assert.Len(t, cfg.ChangeHistory, 2)
}

func TestSetClamps(t *testing.T) {
	svc, _ := newPolicyService()

	max := 30.0
	cfg, err := svc.SetClamps("admin-1", 2.0, &max, "fee policy")
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.MinimumCommission)
	require.NotNil(t, cfg.MaximumCommission)
	assert.Equal(t, 30.0, *cfg.MaximumCommission)

	badMax := 1.0
	_, err = svc.SetClamps("admin-1", 2.0, &badMax, "")
	assertCode(t, err, utils.CodeValidation)

	_, err = svc.SetClamps("admin-1", -1, nil, "")
	assertCode(t, err, utils.CodeValidation)
}

func TestGetHistoryAccumulatesAcrossMutations(t *testing.T) {
	svc, _ := newPolicyService()

	_, err := svc.SetDefaultRate("admin-1", 0.11, "a")
	require.NoError(t, err)
	_, err = svc.SetClamps("admin-1", 1.0, nil, "b")
	require.NoError(t, err)

	history, err := svc.GetHistory()
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestCalculateUsesActivePolicy(t *testing.T) {
	svc, repo := newPolicyService()
	cfg, _ := repo.GetActive()
	cfg.MinimumCommission = 1.0

	b, err := svc.Calculate("ws-1", 5.00)
	require.NoError(t, err)
	assert.Equal(t, 1.00, b.Commission)
	assert.Equal(t, 4.00, b.WorkshopAmount)
}
