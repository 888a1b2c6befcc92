package repositories

import (
	"talent-show-backend/internal/models"

	"gorm.io/gorm"
)

type auditionRepo struct {
	db *gorm.DB
}

func NewAuditionRepository(db *gorm.DB) AuditionRepository {
	return &auditionRepo{db: db}
}

func (r *auditionRepo) CreateAudition(audition *models.Audition) error {
	return r.db.Create(audition).Error
}

func (r *auditionRepo) GetAuditionByID(id string) (*models.Audition, error) {
	var audition models.Audition
	if err := r.db.Preload("Participant").Where("id = ?", id).First(&audition).Error; err != nil {
		return nil, err
	}
	return &audition, nil
}

func (r *auditionRepo) GetAuditionByParticipantID(participantID string) (*models.Audition, error) {
	var audition models.Audition
	if err := r.db.Where("participant_id = ?", participantID).First(&audition).Error; err != nil {
		return nil, err
	}
	return &audition, nil
}

func (r *auditionRepo) ListAuditions(offset, limit int) ([]models.Audition, int64, error) {
	var auditions []models.Audition
	var total int64

	if err := r.db.Model(&models.Audition{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.
		Preload("Participant").
		Preload("Participant.Category").
		Offset(offset).Limit(limit).
		Order("scheduled_date ASC NULLS LAST, created_at DESC").
		Find(&auditions).Error; err != nil {
		return nil, 0, err
	}

	return auditions, total, nil
}

func (r *auditionRepo) UpdateAudition(audition *models.Audition) error {
	return r.db.Save(audition).Error
}
