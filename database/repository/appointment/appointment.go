package appointmentRepo

import "bikefix/models"

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// Create inserts a new appointment. A duplicate active slot for the same
	// (workshop, date, time) is reported as a conflict.
	Create(appt *models.Appointment) error
	// GetByID retrieves an appointment by its unique ID.
	GetByID(id string) (*models.Appointment, error)
	// Update replaces an existing appointment document.
	Update(appt *models.Appointment) error
	// FindSlotHolder returns the appointment occupying the given slot with a
	// status in the given set, or nil when the slot is free.
	FindSlotHolder(workshopID, date, timeSlot string, statuses []string) (*models.Appointment, error)
	// ListByWorkshopAndDate returns the workshop's appointments on a date
	// whose status is in the given set.
	ListByWorkshopAndDate(workshopID, date string, statuses []string) ([]models.Appointment, error)
	// ListByCyclist returns all appointments booked by a cyclist.
	ListByCyclist(cyclistID string) ([]models.Appointment, error)
	// ListByWorkshop returns all appointments held by a workshop.
	ListByWorkshop(workshopID string) ([]models.Appointment, error)
}
