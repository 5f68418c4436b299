package models

import "time"

// CommissionConfig is the platform's commission policy. A single document is
// active at a time; changes mutate it in place and append to ChangeHistory.
type CommissionConfig struct {
	ID                string             `bson:"id" json:"id"`
	DefaultRate       float64            `bson:"defaultRate" json:"defaultRate"`
	WorkshopOverrides []WorkshopOverride `bson:"workshopOverrides" json:"workshopOverrides"`
	TieredRates       []TieredRate       `bson:"tieredRates" json:"tieredRates"`
	MinimumCommission float64            `bson:"minimumCommission" json:"minimumCommission"`
	MaximumCommission *float64           `bson:"maximumCommission,omitempty" json:"maximumCommission,omitempty"`
	ChangeHistory     []CommissionChange `bson:"changeHistory" json:"changeHistory"`
	Active            bool               `bson:"active" json:"active"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkshopOverride pins a workshop to a specific rate inside a validity
// window. A nil ValidTo means open-ended.
type WorkshopOverride struct {
	WorkshopID string     `bson:"workshopId" json:"workshopId"`
	Rate       float64    `bson:"rate" json:"rate"`
	ValidFrom  time.Time  `bson:"validFrom" json:"validFrom"`
	ValidTo    *time.Time `bson:"validTo,omitempty" json:"validTo,omitempty"`
	Reason     string     `bson:"reason,omitempty" json:"reason,omitempty"`
}

// TieredRate applies a rate to transaction totals inside [MinAmount, MaxAmount].
// Bounds are inclusive.
type TieredRate struct {
	MinAmount float64 `bson:"minAmount" json:"minAmount"`
	MaxAmount float64 `bson:"maxAmount" json:"maxAmount"`
	Rate      float64 `bson:"rate" json:"rate"`
}

// CommissionChange is one audit-trail entry.
type CommissionChange struct {
	ChangedBy    string    `bson:"changedBy" json:"changedBy"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
	PreviousRate float64   `bson:"previousRate" json:"previousRate"`
	NewRate      float64   `bson:"newRate" json:"newRate"`
	Reason       string    `bson:"reason,omitempty" json:"reason,omitempty"`
}

// CommissionBreakdown is the result of applying the policy to one total.
type CommissionBreakdown struct {
	Rate           float64 `json:"rate"`
	Commission     float64 `json:"commission"`
	WorkshopAmount float64 `json:"workshopAmount"`
}
