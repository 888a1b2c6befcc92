package services

import (
	"errors"
	"strings"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/models"
	"talent-show-backend/internal/repositories"
	"talent-show-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// VotingService owns finalist curation and the public voting core: recording
// likes keyed by an opaque client-supplied voter token, and the aggregated
// read path. The voter token is a weak identity: it is generated and
// persisted client-side, and a cleared browser can vote again. The composite
// unique index on (performance_id, voter_token) is the single authoritative
// duplicate guard.
type VotingService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewVotingService(repo *repositories.Repository, cfg *config.Config) *VotingService {
	return &VotingService{repo: repo, cfg: cfg}
}

// --- Finalist curation (admin) ---

// ListCandidates returns participants eligible for curation, i.e. those with
// status selected.
func (s *VotingService) ListCandidates(page, pageSize int) ([]models.Participant, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	participants, total, err := s.repo.ParticipantRepo.ListParticipants(models.StatusSelected, "", offset, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return participants, total, totalPages, nil
}

type CreatePerformanceRequest struct {
	ParticipantID string
	Title         string
	ImageURL      string
	DisplayOrder  *int // nil = append at the end (count+1)
}

// CreatePerformance curates a selected participant into a votable entry. The
// category is copied from the participant at creation time. Duplicate titles
// and duplicate participants across performances are permitted.
func (s *VotingService) CreatePerformance(req CreatePerformanceRequest) (*models.FinalPerformance, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	participant, err := s.repo.ParticipantRepo.GetParticipantByID(req.ParticipantID)
	if err != nil {
		return nil, ErrParticipantNotFound
	}
	if participant.Status != models.StatusSelected {
		return nil, ErrParticipantNotSelected
	}

	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	} else {
		count, err := s.repo.PerformanceRepo.CountPerformances()
		if err != nil {
			return nil, err
		}
		displayOrder = int(count) + 1
	}

	performance := &models.FinalPerformance{
		ID:            uuid.New(),
		ParticipantID: participant.ID,
		CategoryID:    participant.CategoryID,
		Title:         req.Title,
		ImageURL:      req.ImageURL,
		DisplayOrder:  displayOrder,
		IsActive:      true,
	}

	if err := s.repo.PerformanceRepo.CreatePerformance(performance); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"performance_id": performance.ID,
		"participant_id": participant.ID,
		"title":          performance.Title,
	}).Info("Performance created")

	return performance, nil
}

func (s *VotingService) SetPerformanceImage(id, imageURL string) (*models.FinalPerformance, error) {
	performance, err := s.repo.PerformanceRepo.GetPerformanceByID(id)
	if err != nil {
		return nil, ErrPerformanceNotFound
	}

	performance.ImageURL = imageURL
	if err := s.repo.PerformanceRepo.UpdatePerformance(performance); err != nil {
		return nil, err
	}
	return performance, nil
}

// TogglePerformance flips voting eligibility. An inactive performance leaves
// the public list but keeps its votes; reactivation restores them unchanged.
func (s *VotingService) TogglePerformance(id string) (*models.FinalPerformance, error) {
	performance, err := s.repo.PerformanceRepo.GetPerformanceByID(id)
	if err != nil {
		return nil, ErrPerformanceNotFound
	}

	performance.IsActive = !performance.IsActive
	if err := s.repo.PerformanceRepo.UpdatePerformance(performance); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"performance_id": performance.ID,
		"active":         performance.IsActive,
	}).Info("Performance toggled")

	return performance, nil
}

// DeletePerformance removes a performance and, by cascade, every one of its
// votes. Irreversible; the handler requires explicit confirmation before
// calling this.
func (s *VotingService) DeletePerformance(id string) error {
	if _, err := s.repo.PerformanceRepo.GetPerformanceByID(id); err != nil {
		return ErrPerformanceNotFound
	}

	if err := s.repo.PerformanceRepo.DeletePerformanceWithVotes(id); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{"performance_id": id}).Warn("Performance deleted with all votes")
	return nil
}

// --- Public voting ---

// VotablePerformance is one entry of the public voting list. HasVoted is
// advisory UI state for the supplied voter token; the authoritative
// duplicate check happens at write time.
type VotablePerformance struct {
	repositories.PerformanceTally
	HasVoted bool `json:"has_voted"`
}

// ListVotablePerformances returns active performances with vote counts,
// ordered by the admin-assigned display order. When a voter token is
// supplied, entries that token already voted for are flagged.
func (s *VotingService) ListVotablePerformances(voterToken string) ([]VotablePerformance, error) {
	tallies, err := s.repo.PerformanceRepo.ListPerformanceTallies(true)
	if err != nil {
		return nil, err
	}

	voted := map[uuid.UUID]bool{}
	if voterToken != "" {
		ids, err := s.repo.VoteRepo.ListVotedPerformanceIDs(voterToken)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			voted[id] = true
		}
	}

	performances := make([]VotablePerformance, 0, len(tallies))
	for _, tally := range tallies {
		performances = append(performances, VotablePerformance{
			PerformanceTally: tally,
			HasVoted:         voted[tally.ID],
		})
	}

	return performances, nil
}

// ListAllTallies is the admin view: every performance, active or not, with
// its count.
func (s *VotingService) ListAllTallies() ([]repositories.PerformanceTally, error) {
	return s.repo.PerformanceRepo.ListPerformanceTallies(false)
}

func (s *VotingService) GetPerformanceTally(id string) (*repositories.PerformanceTally, error) {
	tally, err := s.repo.PerformanceRepo.GetPerformanceTallyByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerformanceNotFound
		}
		return nil, err
	}
	return tally, nil
}

// RecordVote inserts one vote for (performance, voter token). Outcomes:
// nil on success, ErrAlreadyVoted when the unique index rejects a duplicate,
// ErrPerformanceNotFound / ErrPerformanceInactive on referential errors.
// Activity is re-checked server-side; client-side filtering alone would let
// a performance deactivated mid-session keep collecting votes.
func (s *VotingService) RecordVote(performanceID, voterToken, fingerprint string) (*models.Vote, error) {
	if strings.TrimSpace(voterToken) == "" {
		return nil, ErrVoterTokenRequired
	}

	performance, err := s.repo.PerformanceRepo.GetPerformanceByID(performanceID)
	if err != nil {
		return nil, ErrPerformanceNotFound
	}
	if !performance.IsActive {
		return nil, ErrPerformanceInactive
	}

	vote := &models.Vote{
		ID:            uuid.New(),
		PerformanceID: performance.ID,
		VoterToken:    voterToken,
		Fingerprint:   fingerprint,
	}

	if err := s.repo.VoteRepo.CreateVote(vote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"performance_id": performance.ID,
	}).Debug("Vote recorded")

	return vote, nil
}

// --- Aggregated admin views ---

// TopPerformanceByCategory picks the most-voted performance per category: a
// pure transform over the same aggregation the public list uses. Ties keep
// the earlier entry in display order.
func (s *VotingService) TopPerformanceByCategory() (map[string]repositories.PerformanceTally, error) {
	tallies, err := s.repo.PerformanceRepo.ListPerformanceTallies(false)
	if err != nil {
		return nil, err
	}
	return topByCategory(tallies), nil
}

func topByCategory(tallies []repositories.PerformanceTally) map[string]repositories.PerformanceTally {
	top := make(map[string]repositories.PerformanceTally)
	for _, tally := range tallies {
		best, ok := top[tally.CategoryName]
		if !ok || tally.VoteCount > best.VoteCount {
			top[tally.CategoryName] = tally
		}
	}
	return top
}
