package handlers

import (
	userRepo "bikefix/database/repository/user"
)

// HandlerBundle groups the HTTP handlers plus the user repository the auth
// middleware needs for token lookups.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Auth          *AuthHandler
	Appointments  *AppointmentHandler
	Commission    *CommissionHandler
	Reviews       *ReviewHandler
	Payments      *PaymentHandler
	Services      *ServiceHandler
	Notifications *NotificationHandler
}
