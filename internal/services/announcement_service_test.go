package services

import (
	"testing"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/models"
	"talent-show-backend/internal/testutil"

	"github.com/google/uuid"
)

func newAnnouncementFixture() (*testutil.FakeStore, *AnnouncementService, *NotificationService) {
	store := testutil.NewFakeStore()
	cfg := &config.Config{JWTSecret: "test"}
	bus := NewEventBus()
	notifier := NewNotificationService(store.Repository(), cfg, bus)
	return store, NewAnnouncementService(store.Repository(), cfg, bus), notifier
}

func TestCreateAnnouncementFanOut(t *testing.T) {
	store, svc, _ := newAnnouncementFixture()
	singing := store.SeedCategory("Solo Singing", "singing", false)
	dancing := store.SeedCategory("Solo Dancing", "dancing", false)
	store.SeedParticipant(singing, "Alice", "alice@uni.edu", models.StatusPending)
	store.SeedParticipant(singing, "Bob", "bob@uni.edu", models.StatusSelected)
	danceParticipant := store.SeedParticipant(dancing, "Carol", "carol@uni.edu", models.StatusPending)

	author := uuid.New().String()
	categoryID := singing.ID.String()

	// Category-scoped: only singing participants get a row
	if _, err := svc.CreateAnnouncement(CreateAnnouncementRequest{
		Title: "Singing schedule", Body: "Auditions start Monday.",
		CategoryID: &categoryID, IsActive: true, CreatedBy: author,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(store.Notifications) != 2 {
		t.Fatalf("expected 2 notifications for category scope, got %d", len(store.Notifications))
	}
	for _, notification := range store.Notifications {
		if notification.ParticipantID == danceParticipant.ID {
			t.Error("dancing participant must not receive a singing-scoped announcement")
		}
		if notification.Type != models.NotificationAnnouncement {
			t.Errorf("expected announcement notification, got %q", notification.Type)
		}
	}

	// Global: everyone gets a row
	if _, err := svc.CreateAnnouncement(CreateAnnouncementRequest{
		Title: "Venue change", Body: "Finals moved to the Grand Hall.",
		IsActive: true, CreatedBy: author,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(store.Notifications) != 5 {
		t.Errorf("expected 2+3 notifications after broadcast, got %d", len(store.Notifications))
	}
}

func TestInactiveAnnouncementDoesNotFanOut(t *testing.T) {
	store, svc, _ := newAnnouncementFixture()
	category := store.SeedCategory("Solo Singing", "singing", false)
	store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusPending)

	announcement, err := svc.CreateAnnouncement(CreateAnnouncementRequest{
		Title: "Draft", Body: "Not ready yet.", IsActive: false, CreatedBy: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(store.Notifications) != 0 {
		t.Fatalf("inactive announcement must not notify, got %d rows", len(store.Notifications))
	}

	// Activation publishes the fan-out
	toggled, err := svc.ToggleAnnouncement(announcement.ID.String())
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !toggled.IsActive {
		t.Error("expected announcement to become active")
	}
	if len(store.Notifications) != 1 {
		t.Errorf("activation must fan out, got %d rows", len(store.Notifications))
	}

	// Deactivation is silent
	if _, err := svc.ToggleAnnouncement(announcement.ID.String()); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if len(store.Notifications) != 1 {
		t.Errorf("deactivation must not notify, got %d rows", len(store.Notifications))
	}
}

func TestMarkReadRecipientOnly(t *testing.T) {
	store, svc, notifier := newAnnouncementFixture()
	category := store.SeedCategory("Solo Singing", "singing", false)
	recipient := store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusPending)
	other := store.SeedParticipant(category, "Bob", "bob@uni.edu", models.StatusPending)

	categoryID := category.ID.String()
	if _, err := svc.CreateAnnouncement(CreateAnnouncementRequest{
		Title: "Hello", Body: "World", CategoryID: &categoryID, IsActive: true, CreatedBy: uuid.New().String(),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var target *models.Notification
	for _, notification := range store.Notifications {
		if notification.ParticipantID == recipient.ID {
			target = notification
		}
	}
	if target == nil {
		t.Fatal("recipient notification missing")
	}

	if err := notifier.MarkRead(target.ID.String(), other.ID.String()); err != ErrNotRecipient {
		t.Errorf("expected ErrNotRecipient, got %v", err)
	}
	if err := notifier.MarkRead(target.ID.String(), recipient.ID.String()); err != nil {
		t.Errorf("recipient mark-read failed: %v", err)
	}

	count, _ := notifier.UnreadCount(recipient.ID.String())
	if count != 0 {
		t.Errorf("expected 0 unread after mark-read, got %d", count)
	}
}
