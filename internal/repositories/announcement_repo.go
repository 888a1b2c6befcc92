package repositories

import (
	"talent-show-backend/internal/models"

	"gorm.io/gorm"
)

type announcementRepo struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) CreateAnnouncement(announcement *models.Announcement) error {
	return r.db.Create(announcement).Error
}

func (r *announcementRepo) GetAnnouncementByID(id string) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := r.db.Preload("Category").Where("id = ?", id).First(&announcement).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepo) UpdateAnnouncement(announcement *models.Announcement) error {
	return r.db.Save(announcement).Error
}

func (r *announcementRepo) ListAnnouncements(activeOnly bool, categoryID string, offset, limit int) ([]models.Announcement, int64, error) {
	var announcements []models.Announcement
	var total int64

	query := r.db.Model(&models.Announcement{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if categoryID != "" {
		// Category-scoped readers also see global announcements.
		query = query.Where("category_id = ? OR category_id IS NULL", categoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Category").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&announcements).Error; err != nil {
		return nil, 0, err
	}

	return announcements, total, nil
}
