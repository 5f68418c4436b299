package commission

import (
	"time"

	"bikefix/models"
	"bikefix/utils"
)

func (s *DefaultCommissionService) GetPolicy() (*models.CommissionConfig, error) {
	return s.Repo.GetActive()
}

func (s *DefaultCommissionService) GetRateForWorkshop(workshopID string, amount float64) (float64, error) {
	cfg, err := s.Repo.GetActive()
	if err != nil {
		return 0, err
	}
	return RateFor(cfg, workshopID, amount, time.Now()), nil
}

func (s *DefaultCommissionService) Calculate(workshopID string, totalAmount float64) (*models.CommissionBreakdown, error) {
	cfg, err := s.Repo.GetActive()
	if err != nil {
		return nil, err
	}
	b := Breakdown(cfg, workshopID, totalAmount, time.Now())
	return &b, nil
}

func (s *DefaultCommissionService) SetDefaultRate(adminID string, rate float64, reason string) (*models.CommissionConfig, error) {
	if rate < 0 || rate > 1 {
		return nil, utils.NewValidationError("rate must be a fraction between 0 and 1")
	}
	cfg, err := s.Repo.GetActive()
	if err != nil {
		return nil, err
	}

	cfg.ChangeHistory = append(cfg.ChangeHistory, models.CommissionChange{
		ChangedBy:    adminID,
		Timestamp:    time.Now(),
		PreviousRate: cfg.DefaultRate,
		NewRate:      rate,
		Reason:       reason,
	})
	cfg.DefaultRate = rate

	if err := s.Repo.Update(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *DefaultCommissionService) AddWorkshopOverride(adminID string, override models.WorkshopOverride) (*models.CommissionConfig, error) {
	if override.WorkshopID == "" {
		return nil, utils.NewValidationError("workshopId is required")
	}
	if override.Rate < 0 || override.Rate > 1 {
		return nil, utils.NewValidationError("rate must be a fraction between 0 and 1")
	}
	if override.ValidTo != nil && !override.ValidTo.After(override.ValidFrom) {
		return nil, utils.NewValidationError("validTo must be after validFrom")
	}
	cfg, err := s.Repo.GetActive()
	if err != nil {
		return nil, err
	}

	previous := RateFor(cfg, override.WorkshopID, 0, time.Now())
	cfg.ChangeHistory = append(cfg.ChangeHistory, models.CommissionChange{
		ChangedBy:    adminID,
		Timestamp:    time.Now(),
		PreviousRate: previous,
		NewRate:      override.Rate,
		Reason:       override.Reason,
	})
	cfg.WorkshopOverrides = append(cfg.WorkshopOverrides, override)

	if err := s.Repo.Update(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *DefaultCommissionService) SetTieredRates(adminID string, tiers []models.TieredRate, reason string) (*models.CommissionConfig, error) {
	for _, t := range tiers {
		if t.MinAmount < 0 || t.MaxAmount < t.MinAmount {
			return nil, utils.NewValidationError("tier bounds must satisfy 0 <= minAmount <= maxAmount")
		}
		if t.Rate < 0 || t.Rate > 1 {
			return nil, utils.NewValidationError("tier rate must be a fraction between 0 and 1")
		}
	}
	if tiersOverlap(tiers) {
		return nil, utils.NewValidationError("tiered rate bands must not overlap")
	}
	cfg, err := s.Repo.GetActive()
	if err != nil {
		return nil, err
	}

	cfg.ChangeHistory = append(cfg.ChangeHistory, models.CommissionChange{
		ChangedBy:    adminID,
		Timestamp:    time.Now(),
		PreviousRate: cfg.DefaultRate,
		NewRate:      cfg.DefaultRate,
		Reason:       reason,
	})
	cfg.TieredRates = tiers

	if err := s.Repo.Update(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *DefaultCommissionService) SetClamps(adminID string, minimum float64, maximum *float64, reason string) (*models.CommissionConfig, error) {
	if minimum < 0 {
		return nil, utils.NewValidationError("minimumCommission must be >= 0")
	}
	if maximum != nil && *maximum < minimum {
		return nil, utils.NewValidationError("maximumCommission must be >= minimumCommission")
	}
	cfg, err := s.Repo.GetActive()
	if err != nil {
		return nil, err
	}

	cfg.ChangeHistory = append(cfg.ChangeHistory, models.CommissionChange{
		ChangedBy:    adminID,
		Timestamp:    time.Now(),
		PreviousRate: cfg.DefaultRate,
		NewRate:      cfg.DefaultRate,
		Reason:       reason,
	})
	cfg.MinimumCommission = minimum
	cfg.MaximumCommission = maximum

	if err := s.Repo.Update(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *DefaultCommissionService) GetHistory() ([]models.CommissionChange, error) {
	cfg, err := s.Repo.GetActive()
	if err != nil {
		return nil, err
	}
	return cfg.ChangeHistory, nil
}
