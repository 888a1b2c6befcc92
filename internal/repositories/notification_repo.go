package repositories

import (
	"time"

	"talent-show-backend/internal/models"

	"gorm.io/gorm"
)

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) CreateNotifications(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(notifications).Error
}

func (r *notificationRepo) GetNotificationByID(id string) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Where("id = ?", id).First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepo) ListNotificationsByParticipant(participantID string, offset, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.Model(&models.Notification{}).
		Where("participant_id = ?", participantID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.
		Where("participant_id = ?", participantID).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// ListNotificationsSince feeds the SSE stream; it returns rows newer than
// the caller's cursor in insertion order.
func (r *notificationRepo) ListNotificationsSince(participantID string, since time.Time) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.
		Where("participant_id = ? AND created_at > ?", participantID, since).
		Order("created_at ASC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) CountUnread(participantID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Notification{}).
		Where("participant_id = ? AND is_read = ?", participantID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *notificationRepo) MarkNotificationRead(id string) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
