package review

import (
	"time"

	"bikefix/models"
	"bikefix/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validRating(r int) bool { return r >= 1 && r <= 5 }

func validSubRating(r int) bool { return r == 0 || (r >= 1 && r <= 5) }

// CreateReview writes a review for a completed appointment owned by the
// cyclist. The unique index on appointmentId backs the one-review-per-
// appointment rule; the pre-check here gives the friendly error.
func (s *DefaultReviewService) CreateReview(cyclist *models.User, input CreateReviewInput) (*models.Review, error) {
	if !validRating(input.Rating) {
		return nil, utils.NewValidationError("rating must be between 1 and 5")
	}
	for _, sub := range []int{
		input.SubRatings.ServiceQuality, input.SubRatings.PriceValue,
		input.SubRatings.Punctuality, input.SubRatings.Communication,
	} {
		if !validSubRating(sub) {
			return nil, utils.NewValidationError("sub-ratings must be between 1 and 5")
		}
	}

	appt, err := s.AppointmentRepo.GetByID(input.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appt.CyclistID != cyclist.ID {
		return nil, utils.NewForbiddenError("you can only review your own appointments")
	}
	if appt.Status != models.StatusCompleted {
		return nil, utils.NewForbiddenError("only completed appointments can be reviewed")
	}

	existing, err := s.Repo.GetByAppointment(input.AppointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewConflictError("appointment %s has already been reviewed", input.AppointmentID)
	}

	now := time.Now()
	review := &models.Review{
		ID:            uuid.New().String(),
		AppointmentID: appt.ID,
		CyclistID:     cyclist.ID,
		WorkshopID:    appt.WorkshopID,
		Rating:        input.Rating,
		SubRatings:    input.SubRatings,
		Comment:       input.Comment,
		Status:        models.ReviewActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(review); err != nil {
		return nil, err
	}

	s.scheduleAggregate(review.WorkshopID)
	s.Notifier.Notify(review.WorkshopID, models.NotifReviewReceived,
		"You received a new review", map[string]any{"reviewId": review.ID})
	return review, nil
}

func (s *DefaultReviewService) ListByWorkshop(workshopID string) ([]models.Review, error) {
	return s.Repo.ListByWorkshop(workshopID, []string{models.ReviewActive})
}

// Respond records the workshop's single reply to a review.
func (s *DefaultReviewService) Respond(reviewID string, actor *models.User, text string) (*models.Review, error) {
	if text == "" {
		return nil, utils.NewValidationError("response text is required")
	}
	review, err := s.Repo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if actor.ID != review.WorkshopID {
		return nil, utils.NewForbiddenError("only the reviewed workshop can respond")
	}
	if review.Response != nil {
		return nil, utils.NewConflictError("this review already has a response")
	}

	review.Response = &models.ReviewResponse{Text: text, CreatedAt: time.Now()}
	if err := s.Repo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Vote records a helpful / not-helpful vote, replacing the user's prior vote
// so each user holds at most one.
func (s *DefaultReviewService) Vote(reviewID string, actor *models.User, helpful bool) (*models.Review, error) {
	review, err := s.Repo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}

	votes := review.Votes[:0]
	for _, v := range review.Votes {
		if v.UserID != actor.ID {
			votes = append(votes, v)
		}
	}
	review.Votes = append(votes, models.ReviewVote{
		UserID:  actor.ID,
		Helpful: helpful,
		VotedAt: time.Now(),
	})
	if err := s.Repo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Report records at most one report per user. Reports never auto-hide the
// review; moderation is manual.
func (s *DefaultReviewService) Report(reviewID string, actor *models.User, reason string) (*models.Review, error) {
	review, err := s.Repo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	for _, r := range review.Reports {
		if r.UserID == actor.ID {
			return nil, utils.NewConflictError("you have already reported this review")
		}
	}

	review.Reports = append(review.Reports, models.ReviewReport{
		UserID:     actor.ID,
		Reason:     reason,
		ReportedAt: time.Now(),
	})
	if err := s.Repo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *DefaultReviewService) scheduleAggregate(workshopID string) {
	if s.Queue != nil {
		if err := s.Queue.EnqueueRatingAggregate(workshopID); err == nil {
			return
		}
		utils.GetLogger().Warn("failed to enqueue rating aggregate, recomputing inline",
			zap.String("workshopId", workshopID))
	}
	if err := s.RecomputeWorkshopRating(workshopID); err != nil {
		utils.GetLogger().Warn("failed to recompute workshop rating",
			zap.String("workshopId", workshopID), zap.Error(err))
	}
}
