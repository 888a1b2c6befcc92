package services

import (
	"fmt"
	"strings"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/models"
	"talent-show-backend/internal/repositories"
	"talent-show-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RegistrationService covers the category catalog and the participant
// lifecycle: registration plus the linear status progression
// pending -> audition_scheduled -> {selected, not_selected}.
type RegistrationService struct {
	repo *repositories.Repository
	cfg  *config.Config
	bus  *EventBus
}

func NewRegistrationService(repo *repositories.Repository, cfg *config.Config, bus *EventBus) *RegistrationService {
	return &RegistrationService{repo: repo, cfg: cfg, bus: bus}
}

func (s *RegistrationService) ListCategories() ([]models.Category, error) {
	return s.repo.CategoryRepo.ListCategories()
}

type RegisterParticipantRequest struct {
	Name       string
	Email      string
	Phone      string
	StudentID  string
	CategoryID string
	TeamName   *string
	TeamSize   *int
}

func (s *RegistrationService) RegisterParticipant(req RegisterParticipantRequest) (*models.Participant, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	category, err := s.repo.CategoryRepo.GetCategoryByID(req.CategoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	// Team fields are required exactly for group categories.
	if category.IsGroup {
		if req.TeamName == nil || strings.TrimSpace(*req.TeamName) == "" {
			return nil, ErrTeamNameRequired
		}
		if req.TeamSize == nil || *req.TeamSize < 2 {
			return nil, ErrTeamSizeInvalid
		}
	} else {
		req.TeamName = nil
		req.TeamSize = nil
	}

	// One registration per email per category
	existing, _ := s.repo.ParticipantRepo.GetParticipantByEmailAndCategory(req.Email, req.CategoryID)
	if existing != nil {
		return nil, ErrEmailRegistered
	}

	participant := &models.Participant{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		StudentID:  req.StudentID,
		CategoryID: category.ID,
		TeamName:   req.TeamName,
		TeamSize:   req.TeamSize,
		Status:     models.StatusPending,
	}

	if err := s.repo.ParticipantRepo.CreateParticipant(participant); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"participant_id": participant.ID,
		"category":       category.Name,
	}).Info("Participant registered")

	participant.Category = *category
	return participant, nil
}

func (s *RegistrationService) GetParticipant(id string) (*models.Participant, error) {
	participant, err := s.repo.ParticipantRepo.GetParticipantByID(id)
	if err != nil {
		return nil, ErrParticipantNotFound
	}
	return participant, nil
}

func (s *RegistrationService) ListParticipants(status, categoryID string, page, pageSize int) ([]models.Participant, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	participants, total, err := s.repo.ParticipantRepo.ListParticipants(status, categoryID, offset, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return participants, total, totalPages, nil
}

// UpdateStatus moves a participant along the status progression and fans a
// notification out to them.
func (s *RegistrationService) UpdateStatus(participantID, status string) (*models.Participant, error) {
	allowedStatus := map[string]bool{
		models.StatusPending:           true,
		models.StatusAuditionScheduled: true,
		models.StatusSelected:          true,
		models.StatusNotSelected:       true,
	}
	if !allowedStatus[status] {
		return nil, ErrInvalidStatus
	}

	participant, err := s.repo.ParticipantRepo.GetParticipantByID(participantID)
	if err != nil {
		return nil, ErrParticipantNotFound
	}

	if participant.Status == status {
		return participant, nil
	}

	if err := s.repo.ParticipantRepo.UpdateParticipantStatus(participantID, status); err != nil {
		return nil, err
	}
	participant.Status = status

	s.bus.Publish(DomainEvent{
		Type:           EventStatusChanged,
		ParticipantIDs: []uuid.UUID{participant.ID},
		Title:          "Registration status updated",
		Message:        fmt.Sprintf("Your registration status is now %q.", status),
		RelatedID:      &participant.ID,
	})

	logger.WithFields(logrus.Fields{
		"participant_id": participant.ID,
		"status":         status,
	}).Info("Participant status updated")

	return participant, nil
}
