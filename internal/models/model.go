package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'organizer'" json:"role"` // admin|organizer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category is immutable reference data seeded once by scripts/migrate.go.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"` // singing|dancing
	IsGroup   bool      `gorm:"not null;default:false" json:"is_group"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Participant statuses
const (
	StatusPending           = "pending"
	StatusAuditionScheduled = "audition_scheduled"
	StatusSelected          = "selected"
	StatusNotSelected       = "not_selected"
)

type Participant struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Email      string         `gorm:"not null" json:"email"`
	Phone      string         `json:"phone"`
	StudentID  string         `json:"student_id"`
	CategoryID uuid.UUID      `gorm:"type:uuid;index;not null" json:"category_id"`
	TeamName   *string        `json:"team_name"` // required iff category.is_group
	TeamSize   *int           `json:"team_size"`
	Status     string         `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Audition results
const (
	ResultPending      = "pending"
	ResultQualified    = "qualified"
	ResultNotQualified = "not_qualified"
)

// Audition holds one audition slot per participant. The one-per-participant
// rule is enforced by the scheduling service, not a database constraint.
type Audition struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ParticipantID uuid.UUID  `gorm:"type:uuid;index;not null" json:"participant_id"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Venue         string     `json:"venue"`
	Result        string     `gorm:"type:varchar(20);not null;default:'pending'" json:"result"`
	Notes         string     `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	Participant Participant `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
}

type Announcement struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title      string     `gorm:"not null" json:"title"`
	Body       string     `gorm:"type:text;not null" json:"body"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id"` // nil = broadcast to all
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;index;not null" json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Author   User      `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
}

// Notification types
const (
	NotificationAnnouncement      = "announcement"
	NotificationStatusChange      = "status_change"
	NotificationAuditionScheduled = "audition_scheduled"
	NotificationAuditionResult    = "audition_result"
)

// Notification rows are written only by the notification service consuming
// domain events; the recipient may only flip is_read.
type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ParticipantID uuid.UUID  `gorm:"type:uuid;index;not null" json:"participant_id"`
	Type          string     `gorm:"type:varchar(30);not null" json:"type"`
	Title         string     `gorm:"not null" json:"title"`
	Message       string     `gorm:"type:text" json:"message"`
	IsRead        bool       `gorm:"default:false" json:"is_read"`
	RelatedID     *uuid.UUID `gorm:"type:uuid" json:"related_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FinalPerformance is a curated voting entry. CategoryID is copied from the
// participant at creation time and never re-derived, so later category edits
// do not retroactively move a performance.
type FinalPerformance struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;index;not null" json:"participant_id"`
	CategoryID    uuid.UUID `gorm:"type:uuid;index;not null" json:"category_id"`
	Title         string    `gorm:"not null" json:"title"`
	ImageURL      string    `json:"image_url"`
	DisplayOrder  int       `gorm:"not null;default:0" json:"display_order"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Participant Participant `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	Category    Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Vote is append-only. The composite unique index on (performance_id,
// voter_token) is the only duplicate-vote guard; concurrent duplicates race
// at the database and exactly one insert wins.
type Vote struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PerformanceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_performance_voter" json:"performance_id"`
	VoterToken    string    `gorm:"not null;uniqueIndex:idx_votes_performance_voter" json:"-"`
	Fingerprint   string    `json:"-"` // user agent, advisory only
	CreatedAt     time.Time `json:"created_at"`
}
