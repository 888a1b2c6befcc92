package repositories

import (
	"time"

	"talent-show-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	DB               *gorm.DB
	UserRepo         UserRepository
	CategoryRepo     CategoryRepository
	ParticipantRepo  ParticipantRepository
	AuditionRepo     AuditionRepository
	AnnouncementRepo AnnouncementRepository
	NotificationRepo NotificationRepository
	PerformanceRepo  PerformanceRepository
	VoteRepo         VoteRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:               db,
		UserRepo:         NewUserRepository(db),
		CategoryRepo:     NewCategoryRepository(db),
		ParticipantRepo:  NewParticipantRepository(db),
		AuditionRepo:     NewAuditionRepository(db),
		AnnouncementRepo: NewAnnouncementRepository(db),
		NotificationRepo: NewNotificationRepository(db),
		PerformanceRepo:  NewPerformanceRepository(db),
		VoteRepo:         NewVoteRepository(db),
	}
}

func AutoMigrate(db *gorm.DB) error {
	// Enable UUID extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	// Migrate models
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Participant{},
		&models.Audition{},
		&models.Announcement{},
		&models.Notification{},
		&models.FinalPerformance{},
		&models.Vote{},
	)
}

// PerformanceTally is the aggregated read model for vote counts. It carries
// counts only, never individual vote rows or voter tokens.
type PerformanceTally struct {
	ID              uuid.UUID `json:"id"`
	ParticipantID   uuid.UUID `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	CategoryID      uuid.UUID `json:"category_id"`
	CategoryName    string    `json:"category_name"`
	Title           string    `json:"title"`
	ImageURL        string    `json:"image_url"`
	DisplayOrder    int       `json:"display_order"`
	IsActive        bool      `json:"is_active"`
	VoteCount       int64     `json:"vote_count"`
}

// Interface definitions
type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(user *models.User) error
}

type CategoryRepository interface {
	ListCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
}

type ParticipantRepository interface {
	CreateParticipant(participant *models.Participant) error
	GetParticipantByID(id string) (*models.Participant, error)
	GetParticipantByEmailAndCategory(email, categoryID string) (*models.Participant, error)
	ListParticipants(status, categoryID string, offset, limit int) ([]models.Participant, int64, error)
	ListParticipantIDs(categoryID *uuid.UUID) ([]uuid.UUID, error)
	UpdateParticipantStatus(participantID, status string) error
}

type AuditionRepository interface {
	CreateAudition(audition *models.Audition) error
	GetAuditionByID(id string) (*models.Audition, error)
	GetAuditionByParticipantID(participantID string) (*models.Audition, error)
	ListAuditions(offset, limit int) ([]models.Audition, int64, error)
	UpdateAudition(audition *models.Audition) error
}

type AnnouncementRepository interface {
	CreateAnnouncement(announcement *models.Announcement) error
	GetAnnouncementByID(id string) (*models.Announcement, error)
	UpdateAnnouncement(announcement *models.Announcement) error
	ListAnnouncements(activeOnly bool, categoryID string, offset, limit int) ([]models.Announcement, int64, error)
}

type NotificationRepository interface {
	CreateNotifications(notifications []*models.Notification) error
	GetNotificationByID(id string) (*models.Notification, error)
	ListNotificationsByParticipant(participantID string, offset, limit int) ([]models.Notification, int64, error)
	ListNotificationsSince(participantID string, since time.Time) ([]models.Notification, error)
	CountUnread(participantID string) (int64, error)
	MarkNotificationRead(id string) error
}

type PerformanceRepository interface {
	CreatePerformance(performance *models.FinalPerformance) error
	GetPerformanceByID(id string) (*models.FinalPerformance, error)
	CountPerformances() (int64, error)
	UpdatePerformance(performance *models.FinalPerformance) error
	DeletePerformanceWithVotes(id string) error
	ListPerformanceTallies(activeOnly bool) ([]PerformanceTally, error)
	GetPerformanceTallyByID(id string) (*PerformanceTally, error)
}

type VoteRepository interface {
	CreateVote(vote *models.Vote) error
	ListVotedPerformanceIDs(voterToken string) ([]uuid.UUID, error)
	CountVotesByPerformance(performanceID string) (int64, error)
}
