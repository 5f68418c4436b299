package commission

import (
	commissionRepo "bikefix/database/repository/commission"
	"bikefix/models"
)

// CommissionService exposes the platform commission policy: rate resolution
// and fee calculation for the booking flow, and admin-only policy mutations.
type CommissionService interface {
	// GetPolicy returns the active policy, creating a default one on first access.
	GetPolicy() (*models.CommissionConfig, error)
	// GetRateForWorkshop resolves the effective rate for a workshop and amount.
	GetRateForWorkshop(workshopID string, amount float64) (float64, error)
	// Calculate applies the policy to a transaction total.
	Calculate(workshopID string, totalAmount float64) (*models.CommissionBreakdown, error)

	// SetDefaultRate changes the fallback rate.
	SetDefaultRate(adminID string, rate float64, reason string) (*models.CommissionConfig, error)
	// AddWorkshopOverride appends a workshop-specific rate with a validity window.
	AddWorkshopOverride(adminID string, override models.WorkshopOverride) (*models.CommissionConfig, error)
	// SetTieredRates replaces the amount-tiered rate bands.
	SetTieredRates(adminID string, tiers []models.TieredRate, reason string) (*models.CommissionConfig, error)
	// SetClamps changes the minimum and optional maximum commission.
	SetClamps(adminID string, minimum float64, maximum *float64, reason string) (*models.CommissionConfig, error)
	// GetHistory returns the policy change audit trail.
	GetHistory() ([]models.CommissionChange, error)
}

// DefaultCommissionService is the production implementation.
type DefaultCommissionService struct {
	Repo commissionRepo.CommissionRepository
}
