package reviewRepo

import "bikefix/models"

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a new review. A second review for the same appointment
	// is reported as a conflict.
	Create(review *models.Review) error
	// GetByID retrieves a review by its unique ID.
	GetByID(id string) (*models.Review, error)
	// GetByAppointment retrieves the review for an appointment, or nil when
	// none exists.
	GetByAppointment(appointmentID string) (*models.Review, error)
	// Update replaces an existing review document.
	Update(review *models.Review) error
	// ListByWorkshop returns a workshop's reviews, optionally restricted to
	// the given statuses.
	ListByWorkshop(workshopID string, statuses []string) ([]models.Review, error)
}
