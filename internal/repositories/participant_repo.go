package repositories

import (
	"talent-show-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type participantRepo struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) CreateParticipant(participant *models.Participant) error {
	return r.db.Create(participant).Error
}

func (r *participantRepo) GetParticipantByID(id string) (*models.Participant, error) {
	var participant models.Participant
	if err := r.db.Preload("Category").Where("id = ?", id).First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepo) GetParticipantByEmailAndCategory(email, categoryID string) (*models.Participant, error) {
	var participant models.Participant
	if err := r.db.Where("email = ? AND category_id = ?", email, categoryID).First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepo) ListParticipants(status, categoryID string, offset, limit int) ([]models.Participant, int64, error) {
	var participants []models.Participant
	var total int64

	query := r.db.Model(&models.Participant{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Category").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&participants).Error; err != nil {
		return nil, 0, err
	}

	return participants, total, nil
}

// ListParticipantIDs returns all participant ids, optionally scoped to one
// category. Used by the announcement fan-out.
func (r *participantRepo) ListParticipantIDs(categoryID *uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := r.db.Model(&models.Participant{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *participantRepo) UpdateParticipantStatus(participantID, status string) error {
	return r.db.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Update("status", status).Error
}
