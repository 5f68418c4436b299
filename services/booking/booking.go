package booking

import (
	"time"

	"bikefix/models"
	"bikefix/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// activeSlotStatuses are the statuses that hold a slot against new bookings.
var activeSlotStatuses = []string{
	models.StatusPending,
	models.StatusConfirmed,
}

func utilsLogWarn(msg string, err error) {
	utils.GetLogger().Warn(msg, zap.Error(err))
}

// CreateAppointment books a slot for a cyclist at a workshop. The slot must
// be strictly in the future and free of any pending or confirmed appointment;
// the base price is the sum of the requested catalog services and the fee
// fields come from the commission policy.
func (s *DefaultBookingService) CreateAppointment(cyclistID string, input CreateAppointmentInput) (*models.Appointment, error) {
	workshop, err := s.UserRepo.GetByID(input.WorkshopID)
	if err != nil {
		return nil, utils.NewNotFoundError("workshop not found")
	}
	if !workshop.IsWorkshop() {
		return nil, utils.NewNotFoundError("workshop not found")
	}

	scheduledAt, err := time.Parse("2006-01-02 15:04", input.Date+" "+input.Time)
	if err != nil {
		return nil, utils.NewValidationError("invalid date or time format")
	}
	if !scheduledAt.After(time.Now()) {
		return nil, utils.NewValidationError("appointment must be scheduled in the future")
	}

	if len(input.ServiceIDs) == 0 {
		return nil, utils.NewValidationError("at least one service must be requested")
	}
	services, err := s.ServiceRepo.GetMany(input.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(input.ServiceIDs) {
		return nil, utils.NewValidationError("one or more requested services do not exist")
	}

	var basePrice float64
	requested := make([]models.RequestedService, 0, len(services))
	for _, svc := range services {
		if svc.WorkshopID != input.WorkshopID {
			return nil, utils.NewValidationError("service %s does not belong to this workshop", svc.ID)
		}
		basePrice += svc.Price
		requested = append(requested, models.RequestedService{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Price:     svc.Price,
		})
	}

	// Pre-check before the insert; the partial unique index is the real
	// guard against concurrent double-booking.
	holder, err := s.Repo.FindSlotHolder(input.WorkshopID, input.Date, input.Time, activeSlotStatuses)
	if err != nil {
		return nil, err
	}
	if holder != nil {
		return nil, utils.NewConflictError("slot %s %s is already booked", input.Date, input.Time)
	}

	pricing, err := s.computePricing(input.WorkshopID, basePrice, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	appt := &models.Appointment{
		ID:                uuid.New().String(),
		CyclistID:         cyclistID,
		WorkshopID:        input.WorkshopID,
		Date:              input.Date,
		Time:              input.Time,
		Status:            models.StatusPending,
		RequestedServices: requested,
		Pricing:           *pricing,
		Notes:             input.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Repo.Create(appt); err != nil {
		return nil, err
	}

	s.invalidateSlotCache(appt.WorkshopID, appt.Date)
	s.Notifier.NotifyAppointment(appt, models.NotifAppointmentCreated,
		"New appointment requested for "+appt.Date+" "+appt.Time)
	return appt, nil
}

// computePricing builds the pricing block for the given price components.
func (s *DefaultBookingService) computePricing(workshopID string, basePrice, additionalPrice float64) (*models.Pricing, error) {
	total := basePrice + additionalPrice
	breakdown, err := s.Commission.Calculate(workshopID, total)
	if err != nil {
		return nil, err
	}
	return &models.Pricing{
		BasePrice:       basePrice,
		AdditionalPrice: additionalPrice,
		TotalPrice:      total,
		PlatformFeeRate: breakdown.Rate,
		PlatformFee:     breakdown.Commission,
		WorkshopAmount:  breakdown.WorkshopAmount,
	}, nil
}

// GetAppointment returns one appointment, restricted to its parties and admins.
func (s *DefaultBookingService) GetAppointment(appointmentID string, actor *models.User) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && actor.ID != appt.CyclistID && actor.ID != appt.WorkshopID {
		return nil, utils.NewForbiddenError("you are not a party to this appointment")
	}
	return appt, nil
}

// ListForActor returns the actor's appointments (booked or held).
func (s *DefaultBookingService) ListForActor(actor *models.User) ([]models.Appointment, error) {
	if actor.IsWorkshop() {
		return s.Repo.ListByWorkshop(actor.ID)
	}
	return s.Repo.ListByCyclist(actor.ID)
}
