package services

import (
	"time"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/models"
	"talent-show-backend/internal/repositories"
	"talent-show-backend/pkg/logger"

	"github.com/sirupsen/logrus"
)

// NotificationService is the sole writer of notification rows. It consumes
// domain events published by the mutation paths and inserts one row per
// affected participant; recipients may only mark their rows read.
type NotificationService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewNotificationService(repo *repositories.Repository, cfg *config.Config, bus *EventBus) *NotificationService {
	s := &NotificationService{repo: repo, cfg: cfg}
	bus.Subscribe(s.HandleEvent)
	return s
}

var eventNotificationTypes = map[EventType]string{
	EventAnnouncementPublished: models.NotificationAnnouncement,
	EventStatusChanged:         models.NotificationStatusChange,
	EventAuditionScheduled:     models.NotificationAuditionScheduled,
	EventAuditionResult:        models.NotificationAuditionResult,
}

// HandleEvent runs synchronously on the publisher's goroutine. A failed
// insert is logged and dropped; notifications are best-effort and never
// fail the originating mutation.
func (s *NotificationService) HandleEvent(event DomainEvent) {
	notificationType, ok := eventNotificationTypes[event.Type]
	if !ok {
		logger.Warn("Unknown domain event type: ", string(event.Type))
		return
	}

	notifications := make([]*models.Notification, 0, len(event.ParticipantIDs))
	for _, participantID := range event.ParticipantIDs {
		notifications = append(notifications, &models.Notification{
			ParticipantID: participantID,
			Type:          notificationType,
			Title:         event.Title,
			Message:       event.Message,
			RelatedID:     event.RelatedID,
		})
	}

	if err := s.repo.NotificationRepo.CreateNotifications(notifications); err != nil {
		logger.WithFields(logrus.Fields{
			"event_type": event.Type,
			"recipients": len(notifications),
		}).Error("Notification fan-out insert failed: ", err)
		return
	}

	logger.WithFields(logrus.Fields{
		"event_type": event.Type,
		"recipients": len(notifications),
	}).Debug("Notifications created")
}

func (s *NotificationService) ListNotifications(participantID string, page, pageSize int) ([]models.Notification, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	notifications, total, err := s.repo.NotificationRepo.ListNotificationsByParticipant(participantID, offset, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return notifications, total, totalPages, nil
}

func (s *NotificationService) UnreadCount(participantID string) (int64, error) {
	return s.repo.NotificationRepo.CountUnread(participantID)
}

// MarkRead flips is_read for the recipient's own notification.
func (s *NotificationService) MarkRead(notificationID, participantID string) error {
	notification, err := s.repo.NotificationRepo.GetNotificationByID(notificationID)
	if err != nil {
		return ErrNotificationNotFound
	}

	if notification.ParticipantID.String() != participantID {
		return ErrNotRecipient
	}

	return s.repo.NotificationRepo.MarkNotificationRead(notificationID)
}

// ListSince returns notifications newer than the cursor, for the SSE stream.
func (s *NotificationService) ListSince(participantID string, since time.Time) ([]models.Notification, error) {
	return s.repo.NotificationRepo.ListNotificationsSince(participantID, since)
}
