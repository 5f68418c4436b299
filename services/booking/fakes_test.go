package booking

import (
	"time"

	"bikefix/models"
	"bikefix/utils"
)

// fakeAppointmentRepo is an in-memory AppointmentRepository that enforces the
// same active-slot uniqueness the Mongo partial index does.
type fakeAppointmentRepo struct {
	appts map[string]*models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: map[string]*models.Appointment{}}
}

func (r *fakeAppointmentRepo) Create(appt *models.Appointment) error {
	for _, existing := range r.appts {
		if existing.WorkshopID == appt.WorkshopID &&
			existing.Date == appt.Date && existing.Time == appt.Time &&
			(existing.Status == models.StatusPending || existing.Status == models.StatusConfirmed) {
			return utils.NewConflictError("slot %s %s is already booked", appt.Date, appt.Time)
		}
	}
	copied := *appt
	r.appts[appt.ID] = &copied
	return nil
}

func (r *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	appt, ok := r.appts[id]
	if !ok {
		return nil, utils.NewNotFoundError("appointment not found")
	}
	copied := *appt
	return &copied, nil
}

func (r *fakeAppointmentRepo) Update(appt *models.Appointment) error {
	if _, ok := r.appts[appt.ID]; !ok {
		return utils.NewNotFoundError("appointment not found")
	}
	copied := *appt
	r.appts[appt.ID] = &copied
	return nil
}

func (r *fakeAppointmentRepo) FindSlotHolder(workshopID, date, timeSlot string, statuses []string) (*models.Appointment, error) {
	for _, appt := range r.appts {
		if appt.WorkshopID != workshopID || appt.Date != date || appt.Time != timeSlot {
			continue
		}
		for _, s := range statuses {
			if appt.Status == s {
				copied := *appt
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) ListByWorkshopAndDate(workshopID, date string, statuses []string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range r.appts {
		if appt.WorkshopID != workshopID || appt.Date != date {
			continue
		}
		for _, s := range statuses {
			if appt.Status == s {
				out = append(out, *appt)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListByCyclist(cyclistID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range r.appts {
		if appt.CyclistID == cyclistID {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListByWorkshop(workshopID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range r.appts {
		if appt.WorkshopID == workshopID {
			out = append(out, *appt)
		}
	}
	return out, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("user not found")
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, utils.NewNotFoundError("user not found")
}

func (r *fakeUserRepo) GetByTokenHash(tokenHash string) (*models.User, error) {
	for _, u := range r.users {
		if u.TokenHash == tokenHash {
			return u, nil
		}
	}
	return nil, utils.NewNotFoundError("user not found")
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateRating(workshopID string, rating models.RatingSummary) error {
	u, ok := r.users[workshopID]
	if !ok {
		return utils.NewNotFoundError("user not found")
	}
	u.Rating = rating
	return nil
}

func (r *fakeUserRepo) ListByRole(role string) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

// fakeServiceRepo is an in-memory ServiceRepository.
type fakeServiceRepo struct {
	services map[string]*models.Service
}

func newFakeServiceRepo(services ...*models.Service) *fakeServiceRepo {
	r := &fakeServiceRepo{services: map[string]*models.Service{}}
	for _, s := range services {
		r.services[s.ID] = s
	}
	return r
}

func (r *fakeServiceRepo) Create(service *models.Service) error {
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, utils.NewNotFoundError("service not found")
	}
	return s, nil
}

func (r *fakeServiceRepo) GetMany(ids []string) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) Update(service *models.Service) error {
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) Delete(id string) error {
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) ListByWorkshop(workshopID string, activeOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if s.WorkshopID != workshopID {
			continue
		}
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

// stubCommission applies a flat rate with no clamps.
type stubCommission struct {
	rate float64
}

func (c *stubCommission) GetPolicy() (*models.CommissionConfig, error) {
	return &models.CommissionConfig{DefaultRate: c.rate}, nil
}

func (c *stubCommission) GetRateForWorkshop(workshopID string, amount float64) (float64, error) {
	return c.rate, nil
}

func (c *stubCommission) Calculate(workshopID string, totalAmount float64) (*models.CommissionBreakdown, error) {
	fee := totalAmount * c.rate
	return &models.CommissionBreakdown{
		Rate:           c.rate,
		Commission:     fee,
		WorkshopAmount: totalAmount - fee,
	}, nil
}

func (c *stubCommission) SetDefaultRate(adminID string, rate float64, reason string) (*models.CommissionConfig, error) {
	return nil, nil
}

func (c *stubCommission) AddWorkshopOverride(adminID string, override models.WorkshopOverride) (*models.CommissionConfig, error) {
	return nil, nil
}

func (c *stubCommission) SetTieredRates(adminID string, tiers []models.TieredRate, reason string) (*models.CommissionConfig, error) {
	return nil, nil
}

func (c *stubCommission) SetClamps(adminID string, minimum float64, maximum *float64, reason string) (*models.CommissionConfig, error) {
	return nil, nil
}

func (c *stubCommission) GetHistory() ([]models.CommissionChange, error) {
	return nil, nil
}

// noopNotifier swallows everything.
type noopNotifier struct{}

func (noopNotifier) Notify(userID, notifType, message string, data map[string]any)       {}
func (noopNotifier) Email(to, subject, body string)                                      {}
func (noopNotifier) NotifyAppointment(appt *models.Appointment, notifType, message string) {}
func (noopNotifier) ListForUser(userID string) ([]models.Notification, error)            { return nil, nil }
func (noopNotifier) MarkRead(id, userID string) error                                    { return nil }

// recordingReminders remembers which appointments got a reminder scheduled.
type recordingReminders struct {
	scheduled []string
}

func (r *recordingReminders) ScheduleReminder(appt *models.Appointment) error {
	r.scheduled = append(r.scheduled, appt.ID)
	return nil
}

// newTestService wires a booking service over in-memory fakes.
func newTestService(users []*models.User, services []*models.Service) (*DefaultBookingService, *fakeAppointmentRepo) {
	apptRepo := newFakeAppointmentRepo()
	svc := &DefaultBookingService{
		Repo:        apptRepo,
		UserRepo:    newFakeUserRepo(users...),
		ServiceRepo: newFakeServiceRepo(services...),
		Commission:  &stubCommission{rate: 0.10},
		Notifier:    noopNotifier{},
	}
	return svc, apptRepo
}

func futureSlot(ahead time.Duration) (string, string) {
	at := time.Now().Add(ahead)
	return at.Format("2006-01-02"), at.Format("15:04")
}
