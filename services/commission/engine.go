package commission

import (
	"time"

	"bikefix/models"

	"github.com/shopspring/decimal"
)

// RateFor resolves the effective commission rate against a policy snapshot:
// a currently valid workshop override wins, then the tiered band containing
// the amount, then the default rate. First match in stored order wins for
// both overrides and tiers.
func RateFor(cfg *models.CommissionConfig, workshopID string, amount float64, now time.Time) float64 {
	for _, o := range cfg.WorkshopOverrides {
		if o.WorkshopID != workshopID {
			continue
		}
		if now.Before(o.ValidFrom) {
			continue
		}
		if o.ValidTo != nil && now.After(*o.ValidTo) {
			continue
		}
		return o.Rate
	}

	if amount > 0 {
		for _, t := range cfg.TieredRates {
			if amount >= t.MinAmount && amount <= t.MaxAmount {
				return t.Rate
			}
		}
	}

	return cfg.DefaultRate
}

// Breakdown applies the policy to a transaction total using decimal
// arithmetic so that commission + workshopAmount == totalAmount holds exactly
// at cent precision. The commission is clamped to the configured minimum and,
// when set, maximum.
func Breakdown(cfg *models.CommissionConfig, workshopID string, totalAmount float64, now time.Time) models.CommissionBreakdown {
	rate := RateFor(cfg, workshopID, totalAmount, now)

	total := decimal.NewFromFloat(totalAmount).Round(2)
	fee := total.Mul(decimal.NewFromFloat(rate)).Round(2)

	minFee := decimal.NewFromFloat(cfg.MinimumCommission)
	if fee.LessThan(minFee) {
		fee = minFee
	}
	if cfg.MaximumCommission != nil {
		maxFee := decimal.NewFromFloat(*cfg.MaximumCommission)
		if fee.GreaterThan(maxFee) {
			fee = maxFee
		}
	}

	feeF, _ := fee.Float64()
	workshopF, _ := total.Sub(fee).Float64()
	return models.CommissionBreakdown{
		Rate:           rate,
		Commission:     feeF,
		WorkshopAmount: workshopF,
	}
}

// tiersOverlap reports whether any two bands share part of their range.
func tiersOverlap(tiers []models.TieredRate) bool {
	for i := 0; i < len(tiers); i++ {
		for j := i + 1; j < len(tiers); j++ {
			if tiers[i].MinAmount <= tiers[j].MaxAmount && tiers[j].MinAmount <= tiers[i].MaxAmount {
				return true
			}
		}
	}
	return false
}
