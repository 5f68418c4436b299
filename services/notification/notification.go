package notification

import (
	"time"

	"bikefix/config"
	notificationRepo "bikefix/database/repository/notification"
	userRepo "bikefix/database/repository/user"
	"bikefix/models"
	"bikefix/utils"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	UserRepo userRepo.UserRepository
}

func (s *DefaultNotificationService) Notify(userID, notifType, message string, data map[string]any) {
	notif := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(notif); err != nil {
		utils.GetLogger().Warn("failed to store notification",
			zap.String("userId", userID), zap.Error(err))
	}
}

// Email sends via SendGrid. A missing API key (local development) downgrades
// to a log line.
func (s *DefaultNotificationService) Email(to, subject, body string) {
	key := config.AppConfig.SendGridKey
	if key == "" {
		utils.GetLogger().Debug("sendgrid disabled, skipping email", zap.String("to", to))
		return
	}

	from := mail.NewEmail("BikeFix", config.AppConfig.SendGridFrom)
	msg := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, body)
	client := sendgrid.NewSendClient(key)
	if _, err := client.Send(msg); err != nil {
		utils.GetLogger().Warn("failed to send email", zap.String("to", to), zap.Error(err))
	}
}

func (s *DefaultNotificationService) NotifyAppointment(appt *models.Appointment, notifType, message string) {
	data := map[string]any{
		"appointmentId": appt.ID,
		"date":          appt.Date,
		"time":          appt.Time,
		"status":        appt.Status,
	}
	s.Notify(appt.CyclistID, notifType, message, data)
	s.Notify(appt.WorkshopID, notifType, message, data)

	if cyclist, err := s.UserRepo.GetByID(appt.CyclistID); err == nil {
		s.Email(cyclist.Email, "BikeFix: "+message, message)
	}
}

func (s *DefaultNotificationService) ListForUser(userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(userID)
}

func (s *DefaultNotificationService) MarkRead(id, userID string) error {
	return s.Repo.MarkRead(id, userID)
}
