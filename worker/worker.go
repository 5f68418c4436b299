package worker

import (
	"context"
	"encoding/json"

	"bikefix/config"
	"bikefix/models"
	"bikefix/services/notification"
	"bikefix/services/review"
	"bikefix/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt returns the asynq Redis connection settings from config.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Run starts the background worker that processes rating aggregation and
// reminder tasks. It blocks; callers run it in a goroutine.
func Run(reviewSvc review.ReviewService, notifSvc notification.NotificationService) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(RedisOpt(), asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRatingAggregate, handleRatingAggregate(reviewSvc))
	mux.HandleFunc(TypeReminderSend, handleReminder(notifSvc))

	logger.Info("starting background worker")
	if err := srv.Run(mux); err != nil {
		logger.Fatal("background worker failed", zap.Error(err))
	}
}

func handleRatingAggregate(reviewSvc review.ReviewService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p RatingAggregatePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid rating aggregate payload", zap.Error(err))
			return err
		}
		return reviewSvc.RecomputeWorkshopRating(p.WorkshopID)
	}
}

func handleReminder(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
			return err
		}

		message := "Reminder: appointment tomorrow at " + p.Time
		data := map[string]any{"appointmentId": p.AppointmentID, "date": p.Date, "time": p.Time}
		notifSvc.Notify(p.CyclistID, models.NotifReminder, message, data)
		notifSvc.Notify(p.WorkshopID, models.NotifReminder, message, data)
		return nil
	}
}
