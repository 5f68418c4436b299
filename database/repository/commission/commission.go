package commissionRepo

import "bikefix/models"

// CommissionRepository defines methods for commission-policy data access.
// Exactly one config document is active at a time.
type CommissionRepository interface {
	// GetActive returns the active policy, lazily creating a default one when
	// none exists.
	GetActive() (*models.CommissionConfig, error)
	// Update replaces the active policy document.
	Update(cfg *models.CommissionConfig) error
}
