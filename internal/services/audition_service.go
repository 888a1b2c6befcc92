package services

import (
	"fmt"
	"time"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/models"
	"talent-show-backend/internal/repositories"
	"talent-show-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuditionService struct {
	repo *repositories.Repository
	cfg  *config.Config
	bus  *EventBus
}

func NewAuditionService(repo *repositories.Repository, cfg *config.Config, bus *EventBus) *AuditionService {
	return &AuditionService{repo: repo, cfg: cfg, bus: bus}
}

type ScheduleAuditionRequest struct {
	ParticipantID string
	ScheduledDate time.Time
	Venue         string
	Notes         string
}

// ScheduleAudition creates the participant's audition slot. At most one
// audition exists per participant; the rule lives here, not in the schema.
func (s *AuditionService) ScheduleAudition(req ScheduleAuditionRequest) (*models.Audition, error) {
	participant, err := s.repo.ParticipantRepo.GetParticipantByID(req.ParticipantID)
	if err != nil {
		return nil, ErrParticipantNotFound
	}

	if existing, _ := s.repo.AuditionRepo.GetAuditionByParticipantID(req.ParticipantID); existing != nil {
		return nil, ErrAuditionExists
	}

	scheduledDate := req.ScheduledDate
	audition := &models.Audition{
		ID:            uuid.New(),
		ParticipantID: participant.ID,
		ScheduledDate: &scheduledDate,
		Venue:         req.Venue,
		Result:        models.ResultPending,
		Notes:         req.Notes,
	}

	if err := s.repo.AuditionRepo.CreateAudition(audition); err != nil {
		return nil, err
	}

	if err := s.repo.ParticipantRepo.UpdateParticipantStatus(req.ParticipantID, models.StatusAuditionScheduled); err != nil {
		return nil, err
	}

	s.bus.Publish(DomainEvent{
		Type:           EventAuditionScheduled,
		ParticipantIDs: []uuid.UUID{participant.ID},
		Title:          "Audition scheduled",
		Message: fmt.Sprintf("Your audition is scheduled for %s at %s.",
			scheduledDate.Format("Jan 2, 2006 15:04"), req.Venue),
		RelatedID: &audition.ID,
	})

	logger.WithFields(logrus.Fields{
		"audition_id":    audition.ID,
		"participant_id": participant.ID,
		"venue":          req.Venue,
	}).Info("Audition scheduled")

	return audition, nil
}

// RecordResult records a pending audition's outcome and feeds it back into
// the participant's status.
func (s *AuditionService) RecordResult(auditionID, result, notes string) (*models.Audition, error) {
	if result != models.ResultQualified && result != models.ResultNotQualified {
		return nil, ErrInvalidResult
	}

	audition, err := s.repo.AuditionRepo.GetAuditionByID(auditionID)
	if err != nil {
		return nil, ErrAuditionNotFound
	}

	if audition.Result != models.ResultPending {
		return nil, ErrResultAlreadyRecorded
	}

	audition.Result = result
	if notes != "" {
		audition.Notes = notes
	}

	if err := s.repo.AuditionRepo.UpdateAudition(audition); err != nil {
		return nil, err
	}

	status := models.StatusSelected
	message := "Congratulations! You have been selected for the finals."
	if result == models.ResultNotQualified {
		status = models.StatusNotSelected
		message = "Thank you for auditioning. You have not been selected this time."
	}

	if err := s.repo.ParticipantRepo.UpdateParticipantStatus(audition.ParticipantID.String(), status); err != nil {
		return nil, err
	}

	s.bus.Publish(DomainEvent{
		Type:           EventAuditionResult,
		ParticipantIDs: []uuid.UUID{audition.ParticipantID},
		Title:          "Audition result",
		Message:        message,
		RelatedID:      &audition.ID,
	})

	logger.WithFields(logrus.Fields{
		"audition_id":    audition.ID,
		"participant_id": audition.ParticipantID,
		"result":         result,
	}).Info("Audition result recorded")

	return audition, nil
}

func (s *AuditionService) GetAudition(id string) (*models.Audition, error) {
	audition, err := s.repo.AuditionRepo.GetAuditionByID(id)
	if err != nil {
		return nil, ErrAuditionNotFound
	}
	return audition, nil
}

func (s *AuditionService) ListAuditions(page, pageSize int) ([]models.Audition, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	auditions, total, err := s.repo.AuditionRepo.ListAuditions(offset, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return auditions, total, totalPages, nil
}
