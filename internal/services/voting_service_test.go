package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/models"
	"talent-show-backend/internal/testutil"
)

func newVotingService(store *testutil.FakeStore) *VotingService {
	return NewVotingService(store.Repository(), &config.Config{JWTSecret: "test"})
}

func TestRecordVoteIdempotence(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newVotingService(store)

	category := store.SeedCategory("Solo Singing", "singing", false)
	participant := store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusSelected)
	performance := store.SeedPerformance(participant, "Melody of Dreams", 1, true)

	// First vote succeeds
	vote, err := svc.RecordVote(performance.ID.String(), "abc123", "test-agent")
	if err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if vote.PerformanceID != performance.ID {
		t.Errorf("vote recorded against wrong performance")
	}

	// Second identical vote is rejected as a distinguished outcome
	_, err = svc.RecordVote(performance.ID.String(), "abc123", "test-agent")
	if err != ErrAlreadyVoted {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	// Exactly one stored vote row for (P, V)
	count, _ := store.CountVotesByPerformance(performance.ID.String())
	if count != 1 {
		t.Errorf("expected exactly 1 vote row, got %d", count)
	}
}

func TestRecordVoteDistinctTokens(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newVotingService(store)

	category := store.SeedCategory("Solo Dancing", "dancing", false)
	participant := store.SeedParticipant(category, "Bob", "bob@uni.edu", models.StatusSelected)
	performance := store.SeedPerformance(participant, "Night Moves", 1, true)

	const n = 25
	for i := 0; i < n; i++ {
		if _, err := svc.RecordVote(performance.ID.String(), fmt.Sprintf("token-%03d", i), ""); err != nil {
			t.Fatalf("vote %d failed: %v", i, err)
		}
	}

	tally, err := svc.GetPerformanceTally(performance.ID.String())
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if tally.VoteCount != n {
		t.Errorf("expected vote count %d, got %d", n, tally.VoteCount)
	}
}

func TestRecordVoteValidation(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newVotingService(store)

	category := store.SeedCategory("Solo Singing", "singing", false)
	participant := store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusSelected)
	inactive := store.SeedPerformance(participant, "Hidden Song", 1, false)

	tests := []struct {
		name          string
		performanceID string
		voterToken    string
		wantErr       error
	}{
		{"missing token", inactive.ID.String(), "", ErrVoterTokenRequired},
		{"blank token", inactive.ID.String(), "   ", ErrVoterTokenRequired},
		{"unknown performance", "6a6e1f74-0000-0000-0000-000000000000", "tok-1", ErrPerformanceNotFound},
		{"inactive performance", inactive.ID.String(), "tok-1", ErrPerformanceInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordVote(tt.performanceID, tt.voterToken, "")
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if len(store.Votes) != 0 {
		t.Errorf("rejected votes must not be stored, found %d rows", len(store.Votes))
	}
}

func TestTogglePreservesVotes(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newVotingService(store)

	category := store.SeedCategory("Group Dancing", "dancing", true)
	participant := store.SeedParticipant(category, "Crew", "crew@uni.edu", models.StatusSelected)
	performance := store.SeedPerformance(participant, "Sync", 1, true)

	for i := 0; i < 3; i++ {
		if _, err := svc.RecordVote(performance.ID.String(), fmt.Sprintf("tok-%d", i), ""); err != nil {
			t.Fatalf("vote failed: %v", err)
		}
	}

	// Deactivate: gone from the public list, votes preserved
	if _, err := svc.TogglePerformance(performance.ID.String()); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	votable, err := svc.ListVotablePerformances("")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(votable) != 0 {
		t.Errorf("inactive performance should not be listed, got %d entries", len(votable))
	}
	tally, err := svc.GetPerformanceTally(performance.ID.String())
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if tally.VoteCount != 3 {
		t.Errorf("votes must survive deactivation, got count %d", tally.VoteCount)
	}

	// Reactivate: reappears with the same count
	if _, err := svc.TogglePerformance(performance.ID.String()); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	votable, _ = svc.ListVotablePerformances("")
	if len(votable) != 1 || votable[0].VoteCount != 3 {
		t.Errorf("expected reactivated performance with 3 votes, got %+v", votable)
	}
}

func TestDeletePerformanceCascadesVotes(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newVotingService(store)

	category := store.SeedCategory("Solo Singing", "singing", false)
	participant := store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusSelected)
	performance := store.SeedPerformance(participant, "Farewell", 1, true)

	for i := 0; i < 4; i++ {
		if _, err := svc.RecordVote(performance.ID.String(), fmt.Sprintf("tok-%d", i), ""); err != nil {
			t.Fatalf("vote failed: %v", err)
		}
	}

	if err := svc.DeletePerformance(performance.ID.String()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(store.Votes) != 0 {
		t.Errorf("delete must cascade to votes, %d rows remain", len(store.Votes))
	}

	// Aggregation reports not found, not zero
	if _, err := svc.GetPerformanceTally(performance.ID.String()); err != ErrPerformanceNotFound {
		t.Errorf("expected ErrPerformanceNotFound after delete, got %v", err)
	}
}

func TestMelodyOfDreamsScenario(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newVotingService(store)

	category := store.SeedCategory("Solo Singing", "singing", false)
	participant := store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusSelected)
	performance := store.SeedPerformance(participant, "Melody of Dreams", 1, true)

	// abc123 votes: count = 1, has_voted for abc123
	if _, err := svc.RecordVote(performance.ID.String(), "abc123", ""); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	votable, _ := svc.ListVotablePerformances("abc123")
	if len(votable) != 1 || votable[0].VoteCount != 1 || !votable[0].HasVoted {
		t.Fatalf("expected count=1 has_voted=true for abc123, got %+v", votable)
	}

	// abc123 votes again: rejected, count stays 1
	if _, err := svc.RecordVote(performance.ID.String(), "abc123", ""); err != ErrAlreadyVoted {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	votable, _ = svc.ListVotablePerformances("abc123")
	if votable[0].VoteCount != 1 {
		t.Errorf("count must remain 1 after duplicate, got %d", votable[0].VoteCount)
	}

	// xyz789 votes: count = 2, has_voted stays false for xyz until after the vote
	if _, err := svc.RecordVote(performance.ID.String(), "xyz789", ""); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	votable, _ = svc.ListVotablePerformances("xyz789")
	if votable[0].VoteCount != 2 || !votable[0].HasVoted {
		t.Errorf("expected count=2 has_voted=true for xyz789, got %+v", votable[0])
	}
}

func TestTopPerformanceByCategory(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newVotingService(store)

	category := store.SeedCategory("Solo Singing", "singing", false)
	first := store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusSelected)
	second := store.SeedParticipant(category, "Bob", "bob@uni.edu", models.StatusSelected)
	lowVoted := store.SeedPerformance(first, "Quiet Song", 1, true)
	highVoted := store.SeedPerformance(second, "Crowd Favorite", 2, true)

	for i := 0; i < 5; i++ {
		if _, err := svc.RecordVote(lowVoted.ID.String(), fmt.Sprintf("low-%d", i), ""); err != nil {
			t.Fatalf("vote failed: %v", err)
		}
	}
	for i := 0; i < 12; i++ {
		if _, err := svc.RecordVote(highVoted.ID.String(), fmt.Sprintf("high-%d", i), ""); err != nil {
			t.Fatalf("vote failed: %v", err)
		}
	}

	top, err := svc.TopPerformanceByCategory()
	if err != nil {
		t.Fatalf("top failed: %v", err)
	}
	winner, ok := top["Solo Singing"]
	if !ok {
		t.Fatal("missing Solo Singing entry")
	}
	if winner.ID != highVoted.ID || winner.VoteCount != 12 {
		t.Errorf("expected Crowd Favorite with 12 votes, got %q with %d", winner.Title, winner.VoteCount)
	}
}

func TestAggregationNeverExposesVoterTokens(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newVotingService(store)

	category := store.SeedCategory("Solo Singing", "singing", false)
	participant := store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusSelected)
	performance := store.SeedPerformance(participant, "Melody", 1, true)

	const secretToken = "super-secret-voter-token"
	if _, err := svc.RecordVote(performance.ID.String(), secretToken, "secret-fingerprint"); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	votable, err := svc.ListVotablePerformances(secretToken)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	payload, err := json.Marshal(votable)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(payload)
	if strings.Contains(body, "voter_token") || strings.Contains(body, secretToken) {
		t.Errorf("aggregation payload leaks voter identity: %s", body)
	}
	if strings.Contains(body, "secret-fingerprint") {
		t.Errorf("aggregation payload leaks fingerprint: %s", body)
	}
}

func TestCreatePerformanceCuration(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newVotingService(store)

	category := store.SeedCategory("Group Singing", "singing", true)
	selected := store.SeedParticipant(category, "Choir", "choir@uni.edu", models.StatusSelected)
	pending := store.SeedParticipant(category, "Latecomer", "late@uni.edu", models.StatusPending)

	// Only selected participants can be curated
	_, err := svc.CreatePerformance(CreatePerformanceRequest{ParticipantID: pending.ID.String(), Title: "Nope"})
	if err != ErrParticipantNotSelected {
		t.Fatalf("expected ErrParticipantNotSelected, got %v", err)
	}

	// Title is required
	_, err = svc.CreatePerformance(CreatePerformanceRequest{ParticipantID: selected.ID.String(), Title: "  "})
	if err == nil {
		t.Fatal("expected error for empty title")
	}

	// Display order defaults to count+1; category copied from the participant
	performance, err := svc.CreatePerformance(CreatePerformanceRequest{ParticipantID: selected.ID.String(), Title: "Harmony"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if performance.DisplayOrder != 1 {
		t.Errorf("expected display order 1, got %d", performance.DisplayOrder)
	}
	if performance.CategoryID != category.ID {
		t.Errorf("category must be copied from participant")
	}

	second, err := svc.CreatePerformance(CreatePerformanceRequest{ParticipantID: selected.ID.String(), Title: "Harmony"})
	if err != nil {
		t.Fatalf("duplicate title/participant must be permitted: %v", err)
	}
	if second.DisplayOrder != 2 {
		t.Errorf("expected display order 2, got %d", second.DisplayOrder)
	}
}

func TestListCandidatesFiltersSelected(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newVotingService(store)

	category := store.SeedCategory("Solo Singing", "singing", false)
	store.SeedParticipant(category, "Alice", "alice@uni.edu", models.StatusSelected)
	store.SeedParticipant(category, "Bob", "bob@uni.edu", models.StatusPending)
	store.SeedParticipant(category, "Carol", "carol@uni.edu", models.StatusNotSelected)

	candidates, total, _, err := svc.ListCandidates(1, 20)
	if err != nil {
		t.Fatalf("candidates failed: %v", err)
	}
	if total != 1 || len(candidates) != 1 || candidates[0].Name != "Alice" {
		t.Errorf("expected only Alice as candidate, got %d/%d", len(candidates), total)
	}
}
