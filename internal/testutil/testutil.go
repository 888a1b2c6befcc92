// Package testutil provides an in-memory FakeStore implementing every
// repository interface, so service and handler tests run without a database.
// The fake reproduces the one storage-level behavior the voting core depends
// on: the composite unique constraint on (performance_id, voter_token),
// surfaced as gorm.ErrDuplicatedKey.
package testutil

import (
	"sort"
	"sync"
	"time"

	"talent-show-backend/internal/models"
	"talent-show-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FakeStore struct {
	mu            sync.Mutex
	Users         map[uuid.UUID]*models.User
	Categories    []models.Category
	Participants  map[uuid.UUID]*models.Participant
	Auditions     map[uuid.UUID]*models.Audition
	Announcements map[uuid.UUID]*models.Announcement
	Notifications []*models.Notification
	Performances  map[uuid.UUID]*models.FinalPerformance
	Votes         []models.Vote

	seq int // monotonic creation counter standing in for timestamps
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Users:         make(map[uuid.UUID]*models.User),
		Participants:  make(map[uuid.UUID]*models.Participant),
		Auditions:     make(map[uuid.UUID]*models.Audition),
		Announcements: make(map[uuid.UUID]*models.Announcement),
		Performances:  make(map[uuid.UUID]*models.FinalPerformance),
	}
}

// Repository wires the fake into the aggregate the services expect.
func (f *FakeStore) Repository() *repositories.Repository {
	return &repositories.Repository{
		UserRepo:         f,
		CategoryRepo:     f,
		ParticipantRepo:  f,
		AuditionRepo:     f,
		AnnouncementRepo: f,
		NotificationRepo: f,
		PerformanceRepo:  f,
		VoteRepo:         f,
	}
}

func (f *FakeStore) nextTime() time.Time {
	f.seq++
	return time.Unix(0, int64(f.seq)*int64(time.Millisecond))
}

// --- Seed helpers ---

func (f *FakeStore) SeedCategory(name, kind string, isGroup bool) models.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	category := models.Category{ID: uuid.New(), Name: name, Kind: kind, IsGroup: isGroup, CreatedAt: f.nextTime()}
	f.Categories = append(f.Categories, category)
	return category
}

func (f *FakeStore) SeedParticipant(category models.Category, name, email, status string) *models.Participant {
	f.mu.Lock()
	defer f.mu.Unlock()
	participant := &models.Participant{
		ID:         uuid.New(),
		Name:       name,
		Email:      email,
		CategoryID: category.ID,
		Status:     status,
		CreatedAt:  f.nextTime(),
	}
	f.Participants[participant.ID] = participant
	return participant
}

func (f *FakeStore) SeedPerformance(participant *models.Participant, title string, order int, active bool) *models.FinalPerformance {
	f.mu.Lock()
	defer f.mu.Unlock()
	performance := &models.FinalPerformance{
		ID:            uuid.New(),
		ParticipantID: participant.ID,
		CategoryID:    participant.CategoryID,
		Title:         title,
		DisplayOrder:  order,
		IsActive:      active,
		CreatedAt:     f.nextTime(),
	}
	f.Performances[performance.ID] = performance
	return performance
}

// --- UserRepository ---

func (f *FakeStore) GetUserByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.Users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *FakeStore) GetUserByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	user, ok := f.Users[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *user
	return &out, nil
}

func (f *FakeStore) CreateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	f.Users[user.ID] = &stored
	return nil
}

func (f *FakeStore) UpdateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *user
	f.Users[user.ID] = &stored
	return nil
}

// --- CategoryRepository ---

func (f *FakeStore) ListCategories() ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Category, len(f.Categories))
	copy(out, f.Categories)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeStore) GetCategoryByID(id string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, category := range f.Categories {
		if category.ID.String() == id {
			out := category
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *FakeStore) GetCategoryByName(name string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, category := range f.Categories {
		if category.Name == name {
			out := category
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *FakeStore) categoryByID(id uuid.UUID) (models.Category, bool) {
	for _, category := range f.Categories {
		if category.ID == id {
			return category, true
		}
	}
	return models.Category{}, false
}

// --- ParticipantRepository ---

func (f *FakeStore) CreateParticipant(participant *models.Participant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	participant.CreatedAt = f.nextTime()
	stored := *participant
	f.Participants[participant.ID] = &stored
	return nil
}

func (f *FakeStore) GetParticipantByID(id string) (*models.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	participant, ok := f.Participants[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *participant
	if category, ok := f.categoryByID(out.CategoryID); ok {
		out.Category = category
	}
	return &out, nil
}

func (f *FakeStore) GetParticipantByEmailAndCategory(email, categoryID string) (*models.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, participant := range f.Participants {
		if participant.Email == email && participant.CategoryID.String() == categoryID {
			out := *participant
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *FakeStore) ListParticipants(status, categoryID string, offset, limit int) ([]models.Participant, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.Participant
	for _, participant := range f.Participants {
		if status != "" && participant.Status != status {
			continue
		}
		if categoryID != "" && participant.CategoryID.String() != categoryID {
			continue
		}
		matched = append(matched, *participant)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *FakeStore) ListParticipantIDs(categoryID *uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for _, participant := range f.Participants {
		if categoryID != nil && participant.CategoryID != *categoryID {
			continue
		}
		ids = append(ids, participant.ID)
	}
	return ids, nil
}

func (f *FakeStore) UpdateParticipantStatus(participantID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	parsed, err := uuid.Parse(participantID)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	participant, ok := f.Participants[parsed]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	participant.Status = status
	return nil
}

// --- AuditionRepository ---

func (f *FakeStore) CreateAudition(audition *models.Audition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if audition.ID == uuid.Nil {
		audition.ID = uuid.New()
	}
	audition.CreatedAt = f.nextTime()
	stored := *audition
	f.Auditions[audition.ID] = &stored
	return nil
}

func (f *FakeStore) GetAuditionByID(id string) (*models.Audition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	audition, ok := f.Auditions[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *audition
	if participant, ok := f.Participants[out.ParticipantID]; ok {
		out.Participant = *participant
	}
	return &out, nil
}

func (f *FakeStore) GetAuditionByParticipantID(participantID string) (*models.Audition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, audition := range f.Auditions {
		if audition.ParticipantID.String() == participantID {
			out := *audition
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *FakeStore) ListAuditions(offset, limit int) ([]models.Audition, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.Audition
	for _, audition := range f.Auditions {
		matched = append(matched, *audition)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *FakeStore) UpdateAudition(audition *models.Audition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *audition
	f.Auditions[audition.ID] = &stored
	return nil
}

// --- AnnouncementRepository ---

func (f *FakeStore) CreateAnnouncement(announcement *models.Announcement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if announcement.ID == uuid.Nil {
		announcement.ID = uuid.New()
	}
	announcement.CreatedAt = f.nextTime()
	stored := *announcement
	f.Announcements[announcement.ID] = &stored
	return nil
}

func (f *FakeStore) GetAnnouncementByID(id string) (*models.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	announcement, ok := f.Announcements[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *announcement
	return &out, nil
}

func (f *FakeStore) UpdateAnnouncement(announcement *models.Announcement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *announcement
	f.Announcements[announcement.ID] = &stored
	return nil
}

func (f *FakeStore) ListAnnouncements(activeOnly bool, categoryID string, offset, limit int) ([]models.Announcement, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.Announcement
	for _, announcement := range f.Announcements {
		if activeOnly && !announcement.IsActive {
			continue
		}
		if categoryID != "" && announcement.CategoryID != nil && announcement.CategoryID.String() != categoryID {
			continue
		}
		matched = append(matched, *announcement)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// --- NotificationRepository ---

func (f *FakeStore) CreateNotifications(notifications []*models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, notification := range notifications {
		if notification.ID == uuid.Nil {
			notification.ID = uuid.New()
		}
		notification.CreatedAt = f.nextTime()
		stored := *notification
		f.Notifications = append(f.Notifications, &stored)
	}
	return nil
}

func (f *FakeStore) GetNotificationByID(id string) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, notification := range f.Notifications {
		if notification.ID.String() == id {
			out := *notification
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *FakeStore) ListNotificationsByParticipant(participantID string, offset, limit int) ([]models.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.Notification
	for _, notification := range f.Notifications {
		if notification.ParticipantID.String() == participantID {
			matched = append(matched, *notification)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *FakeStore) ListNotificationsSince(participantID string, since time.Time) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.Notification
	for _, notification := range f.Notifications {
		if notification.ParticipantID.String() == participantID && notification.CreatedAt.After(since) {
			matched = append(matched, *notification)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return matched, nil
}

func (f *FakeStore) CountUnread(participantID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, notification := range f.Notifications {
		if notification.ParticipantID.String() == participantID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *FakeStore) MarkNotificationRead(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, notification := range f.Notifications {
		if notification.ID.String() == id {
			notification.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// --- PerformanceRepository ---

func (f *FakeStore) CreatePerformance(performance *models.FinalPerformance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if performance.ID == uuid.Nil {
		performance.ID = uuid.New()
	}
	performance.CreatedAt = f.nextTime()
	stored := *performance
	f.Performances[performance.ID] = &stored
	return nil
}

func (f *FakeStore) GetPerformanceByID(id string) (*models.FinalPerformance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	performance, ok := f.Performances[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *performance
	return &out, nil
}

func (f *FakeStore) CountPerformances() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.Performances)), nil
}

func (f *FakeStore) UpdatePerformance(performance *models.FinalPerformance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *performance
	f.Performances[performance.ID] = &stored
	return nil
}

func (f *FakeStore) DeletePerformanceWithVotes(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	delete(f.Performances, parsed)

	kept := f.Votes[:0]
	for _, vote := range f.Votes {
		if vote.PerformanceID != parsed {
			kept = append(kept, vote)
		}
	}
	f.Votes = kept
	return nil
}

func (f *FakeStore) tallyFor(performance *models.FinalPerformance) repositories.PerformanceTally {
	var count int64
	for _, vote := range f.Votes {
		if vote.PerformanceID == performance.ID {
			count++
		}
	}

	tally := repositories.PerformanceTally{
		ID:            performance.ID,
		ParticipantID: performance.ParticipantID,
		CategoryID:    performance.CategoryID,
		Title:         performance.Title,
		ImageURL:      performance.ImageURL,
		DisplayOrder:  performance.DisplayOrder,
		IsActive:      performance.IsActive,
		VoteCount:     count,
	}
	if participant, ok := f.Participants[performance.ParticipantID]; ok {
		tally.ParticipantName = participant.Name
	}
	if category, ok := f.categoryByID(performance.CategoryID); ok {
		tally.CategoryName = category.Name
	}
	return tally
}

func (f *FakeStore) ListPerformanceTallies(activeOnly bool) ([]repositories.PerformanceTally, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var performances []*models.FinalPerformance
	for _, performance := range f.Performances {
		if activeOnly && !performance.IsActive {
			continue
		}
		performances = append(performances, performance)
	}
	sort.Slice(performances, func(i, j int) bool {
		if performances[i].DisplayOrder != performances[j].DisplayOrder {
			return performances[i].DisplayOrder < performances[j].DisplayOrder
		}
		return performances[i].CreatedAt.Before(performances[j].CreatedAt)
	})

	tallies := make([]repositories.PerformanceTally, 0, len(performances))
	for _, performance := range performances {
		tallies = append(tallies, f.tallyFor(performance))
	}
	return tallies, nil
}

func (f *FakeStore) GetPerformanceTallyByID(id string) (*repositories.PerformanceTally, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	performance, ok := f.Performances[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	tally := f.tallyFor(performance)
	return &tally, nil
}

// --- VoteRepository ---

func (f *FakeStore) CreateVote(vote *models.Vote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.Votes {
		if existing.PerformanceID == vote.PerformanceID && existing.VoterToken == vote.VoterToken {
			return gorm.ErrDuplicatedKey
		}
	}
	if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	vote.CreatedAt = f.nextTime()
	f.Votes = append(f.Votes, *vote)
	return nil
}

func (f *FakeStore) ListVotedPerformanceIDs(voterToken string) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for _, vote := range f.Votes {
		if vote.VoterToken == voterToken {
			ids = append(ids, vote.PerformanceID)
		}
	}
	return ids, nil
}

func (f *FakeStore) CountVotesByPerformance(performanceID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, vote := range f.Votes {
		if vote.PerformanceID.String() == performanceID {
			count++
		}
	}
	return count, nil
}
