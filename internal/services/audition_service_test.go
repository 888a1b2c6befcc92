package services

import (
	"testing"
	"time"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/models"
	"talent-show-backend/internal/testutil"
)

func newAuditionFixture() (*testutil.FakeStore, *AuditionService) {
	store := testutil.NewFakeStore()
	cfg := &config.Config{JWTSecret: "test"}
	bus := NewEventBus()
	NewNotificationService(store.Repository(), cfg, bus)
	return store, NewAuditionService(store.Repository(), cfg, bus)
}

func TestScheduleAudition(t *testing.T) {
	store, svc := newAuditionFixture()
	category := store.SeedCategory("Solo Singing", "singing", false)
	participant := store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusPending)

	audition, err := svc.ScheduleAudition(ScheduleAuditionRequest{
		ParticipantID: participant.ID.String(),
		ScheduledDate: time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC),
		Venue:         "Main Auditorium",
	})
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if audition.Result != models.ResultPending {
		t.Errorf("new auditions start pending, got %q", audition.Result)
	}

	// Scheduling moves the participant forward and notifies them
	stored, _ := store.GetParticipantByID(participant.ID.String())
	if stored.Status != models.StatusAuditionScheduled {
		t.Errorf("expected status audition_scheduled, got %q", stored.Status)
	}
	if len(store.Notifications) != 1 || store.Notifications[0].Type != models.NotificationAuditionScheduled {
		t.Errorf("expected one audition_scheduled notification, got %+v", store.Notifications)
	}

	// One audition per participant
	_, err = svc.ScheduleAudition(ScheduleAuditionRequest{
		ParticipantID: participant.ID.String(),
		ScheduledDate: time.Now(),
		Venue:         "Room 101",
	})
	if err != ErrAuditionExists {
		t.Errorf("expected ErrAuditionExists, got %v", err)
	}

	// Unknown participant
	_, err = svc.ScheduleAudition(ScheduleAuditionRequest{
		ParticipantID: "9c1d2e3f-0000-0000-0000-000000000000",
		ScheduledDate: time.Now(),
	})
	if err != ErrParticipantNotFound {
		t.Errorf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestRecordResult(t *testing.T) {
	tests := []struct {
		name       string
		result     string
		wantStatus string
		wantType   string
	}{
		{"qualified selects", models.ResultQualified, models.StatusSelected, models.NotificationAuditionResult},
		{"not qualified rejects", models.ResultNotQualified, models.StatusNotSelected, models.NotificationAuditionResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, svc := newAuditionFixture()
			category := store.SeedCategory("Solo Singing", "singing", false)
			participant := store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusPending)

			audition, err := svc.ScheduleAudition(ScheduleAuditionRequest{
				ParticipantID: participant.ID.String(),
				ScheduledDate: time.Now(),
				Venue:         "Main Auditorium",
			})
			if err != nil {
				t.Fatalf("schedule failed: %v", err)
			}

			updated, err := svc.RecordResult(audition.ID.String(), tt.result, "solid performance")
			if err != nil {
				t.Fatalf("record failed: %v", err)
			}
			if updated.Result != tt.result {
				t.Errorf("expected result %q, got %q", tt.result, updated.Result)
			}

			stored, _ := store.GetParticipantByID(participant.ID.String())
			if stored.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, stored.Status)
			}

			// scheduled + result notifications
			if len(store.Notifications) != 2 {
				t.Fatalf("expected 2 notifications, got %d", len(store.Notifications))
			}
			if store.Notifications[1].Type != tt.wantType {
				t.Errorf("expected %q notification, got %q", tt.wantType, store.Notifications[1].Type)
			}

			// Result is recorded once
			if _, err := svc.RecordResult(audition.ID.String(), models.ResultQualified, ""); err != ErrResultAlreadyRecorded {
				t.Errorf("expected ErrResultAlreadyRecorded, got %v", err)
			}
		})
	}
}

func TestRecordResultValidation(t *testing.T) {
	_, svc := newAuditionFixture()

	if _, err := svc.RecordResult("7b2c3d4e-0000-0000-0000-000000000000", models.ResultQualified, ""); err != ErrAuditionNotFound {
		t.Errorf("expected ErrAuditionNotFound, got %v", err)
	}
	if _, err := svc.RecordResult("7b2c3d4e-0000-0000-0000-000000000000", "maybe", ""); err == nil {
		t.Error("expected rejection of unknown result value")
	}
}
