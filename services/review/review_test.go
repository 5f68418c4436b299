package review

import (
	"errors"
	"testing"

	"bikefix/models"
	"bikefix/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReviewRepo is an in-memory ReviewRepository enforcing one review per
// appointment, like the unique Mongo index does.
type fakeReviewRepo struct {
	reviews map[string]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*models.Review{}}
}

func (r *fakeReviewRepo) Create(review *models.Review) error {
	for _, existing := range r.reviews {
		if existing.AppointmentID == review.AppointmentID {
			return utils.NewConflictError("appointment %s has already been reviewed", review.AppointmentID)
		}
	}
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByID(id string) (*models.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, utils.NewNotFoundError("review not found")
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) GetByAppointment(appointmentID string) (*models.Review, error) {
	for _, review := range r.reviews {
		if review.AppointmentID == appointmentID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) Update(review *models.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return utils.NewNotFoundError("review not found")
	}
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) ListByWorkshop(workshopID string, statuses []string) ([]models.Review, error) {
	var out []models.Review
	for _, review := range r.reviews {
		if review.WorkshopID != workshopID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if review.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *review)
	}
	return out, nil
}

// fakeApptRepo serves appointments by id; everything else is unused here.
type fakeApptRepo struct {
	appts map[string]*models.Appointment
}

func (r *fakeApptRepo) Create(appt *models.Appointment) error { return nil }

func (r *fakeApptRepo) GetByID(id string) (*models.Appointment, error) {
	appt, ok := r.appts[id]
	if !ok {
		return nil, utils.NewNotFoundError("appointment not found")
	}
	return appt, nil
}

func (r *fakeApptRepo) Update(appt *models.Appointment) error { return nil }

func (r *fakeApptRepo) FindSlotHolder(workshopID, date, timeSlot string, statuses []string) (*models.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByWorkshopAndDate(workshopID, date string, statuses []string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByCyclist(cyclistID string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByWorkshop(workshopID string) ([]models.Appointment, error) {
	return nil, nil
}

// fakeUsers tracks rating updates.
type fakeUsers struct {
	ratings map[string]models.RatingSummary
}

func (r *fakeUsers) Create(user *models.User) error                   { return nil }
func (r *fakeUsers) GetByID(id string) (*models.User, error)          { return nil, nil }
func (r *fakeUsers) GetByEmail(email string) (*models.User, error)    { return nil, nil }
func (r *fakeUsers) GetByTokenHash(hash string) (*models.User, error) { return nil, nil }
func (r *fakeUsers) Update(user *models.User) error                   { return nil }
func (r *fakeUsers) ListByRole(role string) ([]models.User, error)    { return nil, nil }
func (r *fakeUsers) Delete(id string) error                           { return nil }

func (r *fakeUsers) UpdateRating(workshopID string, rating models.RatingSummary) error {
	if r.ratings == nil {
		r.ratings = map[string]models.RatingSummary{}
	}
	r.ratings[workshopID] = rating
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(userID, notifType, message string, data map[string]any)         {}
func (noopNotifier) Email(to, subject, body string)                                        {}
func (noopNotifier) NotifyAppointment(appt *models.Appointment, notifType, message string) {}
func (noopNotifier) ListForUser(userID string) ([]models.Notification, error)              { return nil, nil }
func (noopNotifier) MarkRead(id, userID string) error                                      { return nil }

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *utils.APIError
	require.True(t, errors.As(err, &apiErr), "expected an APIError, got %v", err)
	assert.Equal(t, code, apiErr.Code)
}

func completedAppointment() *models.Appointment {
	return &models.Appointment{
		ID: "appt-1", CyclistID: "cy-1", WorkshopID: "ws-1",
		Date: "2026-09-07", Time: "10:00", Status: models.StatusCompleted,
	}
}

func newReviewService(appts ...*models.Appointment) (*DefaultReviewService, *fakeUsers) {
	apptRepo := &fakeApptRepo{appts: map[string]*models.Appointment{}}
	for _, a := range appts {
		apptRepo.appts[a.ID] = a
	}
	users := &fakeUsers{}
	svc := &DefaultReviewService{
		Repo:            newFakeReviewRepo(),
		AppointmentRepo: apptRepo,
		UserRepo:        users,
		Notifier:        noopNotifier{},
	}
	return svc, users
}

func cyclist() *models.User { return &models.User{ID: "cy-1", Role: models.RoleCyclist} }

func workshop() *models.User { return &models.User{ID: "ws-1", Role: models.RoleWorkshop} }

func TestCreateReviewUpdatesWorkshopRating(t *testing.T) {
	svc, users := newReviewService(completedAppointment())

	review, err := svc.CreateReview(cyclist(), CreateReviewInput{
		AppointmentID: "appt-1",
		Rating:        4,
		SubRatings:    models.SubRatings{ServiceQuality: 5, Punctuality: 3},
		Comment:       "solid work",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ReviewActive, review.Status)
	assert.Equal(t, "ws-1", review.WorkshopID)

	// No queue configured, so the rating recompute ran inline.
	summary := users.ratings["ws-1"]
	assert.Equal(t, 4.0, summary.AverageRating)
	assert.Equal(t, 1, summary.ReviewCount)
	assert.Equal(t, 5.0, summary.DetailedRating.ServiceQuality)
	assert.Equal(t, 3.0, summary.DetailedRating.Punctuality)
	assert.Equal(t, 0.0, summary.DetailedRating.PriceValue)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc, _ := newReviewService(completedAppointment())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateReview(cyclist(), CreateReviewInput{AppointmentID: "appt-1", Rating: rating})
		assertCode(t, err, utils.CodeValidation)
	}

	_, err := svc.CreateReview(cyclist(), CreateReviewInput{
		AppointmentID: "appt-1", Rating: 4,
		SubRatings: models.SubRatings{PriceValue: 7},
	})
	assertCode(t, err, utils.CodeValidation)
}

func TestCreateReviewOnlyOwnAppointments(t *testing.T) {
	svc, _ := newReviewService(completedAppointment())

	other := &models.User{ID: "cy-2", Role: models.RoleCyclist}
	_, err := svc.CreateReview(other, CreateReviewInput{AppointmentID: "appt-1", Rating: 5})
	assertCode(t, err, utils.CodeForbidden)
}

func TestCreateReviewRequiresCompletedAppointment(t *testing.T) {
	appt := completedAppointment()
	appt.Status = models.StatusConfirmed
	svc, _ := newReviewService(appt)

	_, err := svc.CreateReview(cyclist(), CreateReviewInput{AppointmentID: "appt-1", Rating: 5})
	assertCode(t, err, utils.CodeForbidden)
}

func TestCreateReviewDuplicateConflicts(t *testing.T) {
	svc, _ := newReviewService(completedAppointment())

	_, err := svc.CreateReview(cyclist(), CreateReviewInput{AppointmentID: "appt-1", Rating: 5})
	require.NoError(t, err)

	_, err = svc.CreateReview(cyclist(), CreateReviewInput{AppointmentID: "appt-1", Rating: 2})
	assertCode(t, err, utils.CodeConflict)
}

func TestRespondOncePerReview(t *testing.T) {
	svc, _ := newReviewService(completedAppointment())

	review, err := svc.CreateReview(cyclist(), CreateReviewInput{AppointmentID: "appt-1", Rating: 5})
	require.NoError(t, err)

	updated, err := svc.Respond(review.ID, workshop(), "thanks for coming in")
	require.NoError(t, err)
	require.NotNil(t, updated.Response)
	assert.Equal(t, "thanks for coming in", updated.Response.Text)

	_, err = svc.Respond(review.ID, workshop(), "one more thing")
	assertCode(t, err, utils.CodeConflict)
}

func TestRespondOnlyByReviewedWorkshop(t *testing.T) {
	svc, _ := newReviewService(completedAppointment())

	review, err := svc.CreateReview(cyclist(), CreateReviewInput{AppointmentID: "appt-1", Rating: 5})
	require.NoError(t, err)

	other := &models.User{ID: "ws-2", Role: models.RoleWorkshop}
	_, err = svc.Respond(review.ID, other, "hello")
	assertCode(t, err, utils.CodeForbidden)
}

func TestVoteReplacesPriorVote(t *testing.T) {
	svc, _ := newReviewService(completedAppointment())

	review, err := svc.CreateReview(cyclist(), CreateReviewInput{AppointmentID: "appt-1", Rating: 5})
	require.NoError(t, err)

	voter := &models.User{ID: "cy-9", Role: models.RoleCyclist}
	_, err = svc.Vote(review.ID, voter, true)
	require.NoError(t, err)

	updated, err := svc.Vote(review.ID, voter, false)
	require.NoError(t, err)

	require.Len(t, updated.Votes, 1)
	assert.False(t, updated.Votes[0].Helpful)
}

func TestReportOncePerUser(t *testing.T) {
	svc, _ := newReviewService(completedAppointment())

	review, err := svc.CreateReview(cyclist(), CreateReviewInput{AppointmentID: "appt-1", Rating: 1})
	require.NoError(t, err)

	reporter := &models.User{ID: "u-5", Role: models.RoleCyclist}
	updated, err := svc.Report(review.ID, reporter, "spam")
	require.NoError(t, err)
	assert.Len(t, updated.Reports, 1)
	// Reports never auto-hide.
	assert.Equal(t, models.ReviewActive, updated.Status)

	_, err = svc.Report(review.ID, reporter, "still spam")
	assertCode(t, err, utils.CodeConflict)
}
