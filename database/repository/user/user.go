package userRepo

import "bikefix/models"

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(user *models.User) error
	// GetByID retrieves a user by their unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by their email.
	GetByEmail(email string) (*models.User, error)
	// GetByTokenHash retrieves a user by the hash of their active token.
	GetByTokenHash(tokenHash string) (*models.User, error)
	// Update modifies an existing user record.
	Update(user *models.User) error
	// UpdateRating replaces a workshop's denormalized rating summary.
	UpdateRating(workshopID string, rating models.RatingSummary) error
	// ListByRole returns all users with the given role.
	ListByRole(role string) ([]models.User, error)
	// Delete removes a user record by its ID.
	Delete(id string) error
}
