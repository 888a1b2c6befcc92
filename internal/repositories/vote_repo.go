package repositories

import (
	"talent-show-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type voteRepo struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepo{db: db}
}

// CreateVote inserts a vote row. A duplicate (performance_id, voter_token)
// pair violates idx_votes_performance_voter and comes back as
// gorm.ErrDuplicatedKey via the TranslateError dialector option.
func (r *voteRepo) CreateVote(vote *models.Vote) error {
	return r.db.Create(vote).Error
}

func (r *voteRepo) ListVotedPerformanceIDs(voterToken string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.Model(&models.Vote{}).
		Where("voter_token = ?", voterToken).
		Pluck("performance_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *voteRepo) CountVotesByPerformance(performanceID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Vote{}).
		Where("performance_id = ?", performanceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
