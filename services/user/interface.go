package user

import (
	userRepo "bikefix/database/repository/user"
	"bikefix/models"
	"bikefix/services/notification"
)

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Role        string
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Address     string
}

// AuthResponse contains the user's ID, role and bearer token.
type AuthResponse struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// UserService manages platform identities.
type UserService interface {
	Register(input RegisterInput) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetByID(id string) (*models.User, error)
	UpdateProfile(userID string, updates ProfileUpdates) (*models.User, error)
	RevokeToken(userID string) error
	ListWorkshops() ([]models.User, error)
}

// ProfileUpdates holds the mutable profile fields; nil means unchanged.
type ProfileUpdates struct {
	Name         *string
	PhoneNumber  *string
	Address      *string
	Description  *string
	WorkingHours map[string]models.WorkingHours
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Notifier notification.NotificationService
}
