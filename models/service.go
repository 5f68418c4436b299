package models

import "time"

// Service is one repair service a workshop offers.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	WorkshopID      string    `bson:"workshopId" json:"workshopId"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64   `bson:"price" json:"price"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
