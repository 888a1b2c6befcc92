package services

import (
	"testing"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/models"
	"talent-show-backend/internal/testutil"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func newRegistrationFixture() (*testutil.FakeStore, *RegistrationService, *EventBus) {
	store := testutil.NewFakeStore()
	cfg := &config.Config{JWTSecret: "test"}
	bus := NewEventBus()
	NewNotificationService(store.Repository(), cfg, bus)
	return store, NewRegistrationService(store.Repository(), cfg, bus), bus
}

func TestRegisterParticipant(t *testing.T) {
	store, svc, _ := newRegistrationFixture()
	solo := store.SeedCategory("Solo Singing", "singing", false)
	group := store.SeedCategory("Group Dancing", "dancing", true)

	tests := []struct {
		name    string
		req     RegisterParticipantRequest
		wantErr bool
	}{
		{
			name: "solo registration",
			req:  RegisterParticipantRequest{Name: "Alice", Email: "Alice@uni.edu", CategoryID: solo.ID.String()},
		},
		{
			name:    "group without team name",
			req:     RegisterParticipantRequest{Name: "Crew", Email: "crew@uni.edu", CategoryID: group.ID.String(), TeamSize: intPtr(4)},
			wantErr: true,
		},
		{
			name:    "group with team size below two",
			req:     RegisterParticipantRequest{Name: "Crew", Email: "crew@uni.edu", CategoryID: group.ID.String(), TeamName: strPtr("The Crew"), TeamSize: intPtr(1)},
			wantErr: true,
		},
		{
			name: "group registration",
			req:  RegisterParticipantRequest{Name: "Crew", Email: "crew@uni.edu", CategoryID: group.ID.String(), TeamName: strPtr("The Crew"), TeamSize: intPtr(4)},
		},
		{
			name:    "unknown category",
			req:     RegisterParticipantRequest{Name: "Bob", Email: "bob@uni.edu", CategoryID: "3f0b6a2e-0000-0000-0000-000000000000"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participant, err := svc.RegisterParticipant(tt.req)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if participant.Status != models.StatusPending {
				t.Errorf("new registrations start pending, got %q", participant.Status)
			}
		})
	}

	// Email is normalized and unique per category
	_, err := svc.RegisterParticipant(RegisterParticipantRequest{Name: "Alice Again", Email: "ALICE@uni.edu", CategoryID: solo.ID.String()})
	if err == nil {
		t.Error("expected duplicate email rejection")
	}
	// Same email in a different category is allowed
	_, err = svc.RegisterParticipant(RegisterParticipantRequest{
		Name: "Alice", Email: "alice@uni.edu", CategoryID: group.ID.String(),
		TeamName: strPtr("Alice and Friends"), TeamSize: intPtr(3),
	})
	if err != nil {
		t.Errorf("same email in another category should register: %v", err)
	}
}

func TestRegisterSoloClearsTeamFields(t *testing.T) {
	store, svc, _ := newRegistrationFixture()
	solo := store.SeedCategory("Solo Dancing", "dancing", false)

	participant, err := svc.RegisterParticipant(RegisterParticipantRequest{
		Name: "Bob", Email: "bob@uni.edu", CategoryID: solo.ID.String(),
		TeamName: strPtr("ignored"), TeamSize: intPtr(5),
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if participant.TeamName != nil || participant.TeamSize != nil {
		t.Error("team fields must be cleared for solo categories")
	}
}

func TestUpdateStatusNotifiesParticipant(t *testing.T) {
	store, svc, _ := newRegistrationFixture()
	category := store.SeedCategory("Solo Singing", "singing", false)
	participant := store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusPending)

	updated, err := svc.UpdateStatus(participant.ID.String(), models.StatusSelected)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != models.StatusSelected {
		t.Errorf("expected status selected, got %q", updated.Status)
	}

	if len(store.Notifications) != 1 {
		t.Fatalf("expected 1 notification row, got %d", len(store.Notifications))
	}
	notification := store.Notifications[0]
	if notification.ParticipantID != participant.ID || notification.Type != models.NotificationStatusChange {
		t.Errorf("unexpected notification: %+v", notification)
	}

	// Re-applying the same status is a no-op
	if _, err := svc.UpdateStatus(participant.ID.String(), models.StatusSelected); err != nil {
		t.Fatalf("idempotent update failed: %v", err)
	}
	if len(store.Notifications) != 1 {
		t.Errorf("no-op update must not notify, got %d rows", len(store.Notifications))
	}

	// Invalid status names are rejected
	if _, err := svc.UpdateStatus(participant.ID.String(), "winner"); err == nil {
		t.Error("expected invalid status rejection")
	}
}
