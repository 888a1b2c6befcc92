package services

import (
	"errors"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/models"
	"talent-show-backend/internal/repositories"
	"talent-show-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AnnouncementService struct {
	repo *repositories.Repository
	cfg  *config.Config
	bus  *EventBus
}

func NewAnnouncementService(repo *repositories.Repository, cfg *config.Config, bus *EventBus) *AnnouncementService {
	return &AnnouncementService{repo: repo, cfg: cfg, bus: bus}
}

type CreateAnnouncementRequest struct {
	Title      string
	Body       string
	CategoryID *string // nil = broadcast to all categories
	IsActive   bool
	CreatedBy  string
}

func (s *AnnouncementService) CreateAnnouncement(req CreateAnnouncementRequest) (*models.Announcement, error) {
	var categoryID *uuid.UUID
	if req.CategoryID != nil && *req.CategoryID != "" {
		category, err := s.repo.CategoryRepo.GetCategoryByID(*req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		categoryID = &category.ID
	}

	createdBy, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		return nil, errors.New("invalid author id")
	}

	announcement := &models.Announcement{
		ID:         uuid.New(),
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: categoryID,
		IsActive:   req.IsActive,
		CreatedBy:  createdBy,
	}

	if err := s.repo.AnnouncementRepo.CreateAnnouncement(announcement); err != nil {
		return nil, err
	}

	if announcement.IsActive {
		s.fanOut(announcement)
	}

	logger.WithFields(logrus.Fields{
		"announcement_id": announcement.ID,
		"active":          announcement.IsActive,
	}).Info("Announcement created")

	return announcement, nil
}

func (s *AnnouncementService) UpdateAnnouncement(id, title, body string) (*models.Announcement, error) {
	announcement, err := s.repo.AnnouncementRepo.GetAnnouncementByID(id)
	if err != nil {
		return nil, ErrAnnouncementNotFound
	}

	if title != "" {
		announcement.Title = title
	}
	if body != "" {
		announcement.Body = body
	}

	if err := s.repo.AnnouncementRepo.UpdateAnnouncement(announcement); err != nil {
		return nil, err
	}

	return announcement, nil
}

// ToggleAnnouncement flips visibility. Activation republishes the fan-out;
// deactivation is silent.
func (s *AnnouncementService) ToggleAnnouncement(id string) (*models.Announcement, error) {
	announcement, err := s.repo.AnnouncementRepo.GetAnnouncementByID(id)
	if err != nil {
		return nil, ErrAnnouncementNotFound
	}

	announcement.IsActive = !announcement.IsActive
	if err := s.repo.AnnouncementRepo.UpdateAnnouncement(announcement); err != nil {
		return nil, err
	}

	if announcement.IsActive {
		s.fanOut(announcement)
	}

	return announcement, nil
}

func (s *AnnouncementService) ListAnnouncements(activeOnly bool, categoryID string, page, pageSize int) ([]models.Announcement, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	announcements, total, err := s.repo.AnnouncementRepo.ListAnnouncements(activeOnly, categoryID, offset, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return announcements, total, totalPages, nil
}

// fanOut publishes one event carrying every participant in the
// announcement's scope; the notifier writes one row per participant.
func (s *AnnouncementService) fanOut(announcement *models.Announcement) {
	participantIDs, err := s.repo.ParticipantRepo.ListParticipantIDs(announcement.CategoryID)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"announcement_id": announcement.ID,
		}).Error("Announcement fan-out failed: ", err)
		return
	}

	s.bus.Publish(DomainEvent{
		Type:           EventAnnouncementPublished,
		ParticipantIDs: participantIDs,
		Title:          announcement.Title,
		Message:        announcement.Body,
		RelatedID:      &announcement.ID,
	})
}
