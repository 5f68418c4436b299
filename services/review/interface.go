package review

import (
	appointmentRepo "bikefix/database/repository/appointment"
	reviewRepo "bikefix/database/repository/review"
	userRepo "bikefix/database/repository/user"
	"bikefix/models"
	"bikefix/services/notification"
)

// CreateReviewInput carries a validated review submission.
type CreateReviewInput struct {
	AppointmentID string
	Rating        int
	SubRatings    models.SubRatings
	Comment       string
}

// AggregateQueue hands rating recomputation off to a background worker. When
// no queue is configured the service recomputes inline.
type AggregateQueue interface {
	EnqueueRatingAggregate(workshopID string) error
}

// ReviewService manages reviews and the denormalized workshop rating.
type ReviewService interface {
	CreateReview(cyclist *models.User, input CreateReviewInput) (*models.Review, error)
	ListByWorkshop(workshopID string) ([]models.Review, error)
	Respond(reviewID string, actor *models.User, text string) (*models.Review, error)
	Vote(reviewID string, actor *models.User, helpful bool) (*models.Review, error)
	Report(reviewID string, actor *models.User, reason string) (*models.Review, error)
	// RecomputeWorkshopRating rebuilds the workshop's rating summary from its
	// active reviews. Idempotent; safe to run repeatedly.
	RecomputeWorkshopRating(workshopID string) error
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo            reviewRepo.ReviewRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	UserRepo        userRepo.UserRepository
	Notifier        notification.NotificationService
	Queue           AggregateQueue // optional
}
