package models

import "time"

// User roles.
const (
	RoleCyclist  = "cyclist"
	RoleWorkshop = "workshop"
	RoleAdmin    = "admin"
)

// WorkingHours defines a workshop's opening window for one weekday.
// Times are "HH:MM" in the workshop's local time; a zero value means closed.
type WorkingHours struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// DetailedRating holds the per-dimension averages denormalized onto a workshop.
type DetailedRating struct {
	ServiceQuality float64 `bson:"serviceQuality" json:"serviceQuality"`
	PriceValue     float64 `bson:"priceValue" json:"priceValue"`
	Punctuality    float64 `bson:"punctuality" json:"punctuality"`
	Communication  float64 `bson:"communication" json:"communication"`
}

// RatingSummary is recomputed from active reviews on every review write.
type RatingSummary struct {
	AverageRating  float64        `bson:"averageRating" json:"averageRating"`
	ReviewCount    int            `bson:"reviewCount" json:"reviewCount"`
	DetailedRating DetailedRating `bson:"detailedRating" json:"detailedRating"`
}

// User represents any platform identity: cyclist, workshop, or admin.
// Workshop-only fields are omitted from cyclist documents.
type User struct {
	ID           string `bson:"id" json:"id"`
	Role         string `bson:"role" json:"role"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	TokenHash    string `bson:"tokenHash,omitempty" json:"-"`
	PhoneNumber  string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`

	// Workshop profile.
	Address         string                  `bson:"address,omitempty" json:"address,omitempty"`
	Description     string                  `bson:"description,omitempty" json:"description,omitempty"`
	WorkingHours    map[string]WorkingHours `bson:"workingHours,omitempty" json:"workingHours,omitempty"` // keyed by lowercase weekday
	Rating          RatingSummary           `bson:"rating" json:"rating"`
	StripeAccountID string                  `bson:"stripeAccountID,omitempty" json:"stripeAccountID,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsWorkshop reports whether the user is a workshop account.
func (u *User) IsWorkshop() bool {
	return u.Role == RoleWorkshop
}
