package repositories

import (
	"talent-show-backend/internal/models"

	"gorm.io/gorm"
)

type performanceRepo struct {
	db *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) PerformanceRepository {
	return &performanceRepo{db: db}
}

func (r *performanceRepo) CreatePerformance(performance *models.FinalPerformance) error {
	return r.db.Create(performance).Error
}

func (r *performanceRepo) GetPerformanceByID(id string) (*models.FinalPerformance, error) {
	var performance models.FinalPerformance
	if err := r.db.
		Preload("Participant").
		Preload("Category").
		Where("id = ?", id).
		First(&performance).Error; err != nil {
		return nil, err
	}
	return &performance, nil
}

func (r *performanceRepo) CountPerformances() (int64, error) {
	var count int64
	if err := r.db.Model(&models.FinalPerformance{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *performanceRepo) UpdatePerformance(performance *models.FinalPerformance) error {
	return r.db.Save(performance).Error
}

// DeletePerformanceWithVotes removes a performance and all of its votes in
// one transaction. Irreversible; callers must have confirmed the cascade.
func (r *performanceRepo) DeletePerformanceWithVotes(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("performance_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.FinalPerformance{}).Error
	})
}

const tallySelect = `final_performances.id, final_performances.participant_id, participants.name AS participant_name,
final_performances.category_id, categories.name AS category_name, final_performances.title,
final_performances.image_url, final_performances.display_order, final_performances.is_active,
COUNT(votes.id) AS vote_count`

const tallyGroupBy = `final_performances.id, participants.name, categories.name`

// ListPerformanceTallies is the aggregation read path. It exposes counts
// only; voter tokens never cross this boundary.
func (r *performanceRepo) ListPerformanceTallies(activeOnly bool) ([]PerformanceTally, error) {
	var tallies []PerformanceTally

	query := r.db.Model(&models.FinalPerformance{}).
		Select(tallySelect).
		Joins("JOIN participants ON participants.id = final_performances.participant_id").
		Joins("JOIN categories ON categories.id = final_performances.category_id").
		Joins("LEFT JOIN votes ON votes.performance_id = final_performances.id").
		Group(tallyGroupBy)

	if activeOnly {
		query = query.Where("final_performances.is_active = ?", true)
	}

	if err := query.
		Order("final_performances.display_order ASC, final_performances.created_at ASC").
		Scan(&tallies).Error; err != nil {
		return nil, err
	}

	return tallies, nil
}

func (r *performanceRepo) GetPerformanceTallyByID(id string) (*PerformanceTally, error) {
	var tally PerformanceTally

	result := r.db.Model(&models.FinalPerformance{}).
		Select(tallySelect).
		Joins("JOIN participants ON participants.id = final_performances.participant_id").
		Joins("JOIN categories ON categories.id = final_performances.category_id").
		Joins("LEFT JOIN votes ON votes.performance_id = final_performances.id").
		Where("final_performances.id = ?", id).
		Group(tallyGroupBy).
		Scan(&tally)

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &tally, nil
}
