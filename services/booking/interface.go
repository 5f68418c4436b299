package booking

import (
	appointmentRepo "bikefix/database/repository/appointment"
	serviceRepo "bikefix/database/repository/service"
	userRepo "bikefix/database/repository/user"
	"bikefix/models"
	"bikefix/services/commission"
	"bikefix/services/notification"

	"github.com/go-redis/redis/v8"
)

// CreateAppointmentInput carries a validated booking request.
type CreateAppointmentInput struct {
	WorkshopID string
	Date       string // "YYYY-MM-DD"
	Time       string // "HH:MM"
	ServiceIDs []string
	Notes      string
}

// SlotAvailability is the result of a slot lookup for one workshop and date.
type SlotAvailability struct {
	AvailableSlots []string `json:"availableSlots"`
	OccupiedSlots  []string `json:"occupiedSlots"`
}

// ReminderQueue schedules a day-before reminder for a confirmed appointment.
type ReminderQueue interface {
	ScheduleReminder(appt *models.Appointment) error
}

// BookingService orchestrates the appointment lifecycle: creation with slot
// and price resolution, the status state machine, cancellation, additional
// budgets, and slot availability.
type BookingService interface {
	CreateAppointment(cyclistID string, input CreateAppointmentInput) (*models.Appointment, error)
	GetAppointment(appointmentID string, actor *models.User) (*models.Appointment, error)
	ListForActor(actor *models.User) ([]models.Appointment, error)
	UpdateStatus(appointmentID string, actor *models.User, newStatus string) (*models.Appointment, error)
	CancelAppointment(appointmentID string, actor *models.User, reason string) (*models.Appointment, error)
	AddAdditionalBudget(appointmentID string, actor *models.User, items []models.BudgetItem) (*models.Appointment, error)
	RespondAdditionalBudget(appointmentID string, actor *models.User, budgetIndex int, approve bool) (*models.Appointment, error)
	GetAvailableSlots(workshopID, date string) (*SlotAvailability, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo        appointmentRepo.AppointmentRepository
	UserRepo    userRepo.UserRepository
	ServiceRepo serviceRepo.ServiceRepository
	Commission  commission.CommissionService
	Notifier    notification.NotificationService
	Reminders   ReminderQueue
	Cache       *redis.Client // optional, slot availability
}
