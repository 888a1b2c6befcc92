package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"talent-show-backend/internal/models"
	"talent-show-backend/internal/testutil"
)

func TestRegisterParticipantEndpoint(t *testing.T) {
	store := testutil.NewFakeStore()
	app := newTestApp(store)

	solo := store.SeedCategory("Solo Singing", "singing", false)
	group := store.SeedCategory("Group Dancing", "dancing", true)

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name: "solo registration",
			payload: map[string]interface{}{
				"name": "Alice", "email": "alice@uni.edu", "phone": "555-0101",
				"category_id": solo.ID.String(),
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing email",
			payload: map[string]interface{}{
				"name": "Bob", "phone": "555-0102", "category_id": solo.ID.String(),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "malformed category id",
			payload: map[string]interface{}{
				"name": "Bob", "email": "bob@uni.edu", "phone": "555-0102",
				"category_id": "not-a-uuid",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown category",
			payload: map[string]interface{}{
				"name": "Bob", "email": "bob@uni.edu", "phone": "555-0102",
				"category_id": "1a2b3c4d-0000-0000-0000-000000000000",
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "duplicate email in category",
			payload: map[string]interface{}{
				"name": "Alice Again", "email": "alice@uni.edu", "phone": "555-0103",
				"category_id": solo.ID.String(),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "group without team fields",
			payload: map[string]interface{}{
				"name": "Crew", "email": "crew@uni.edu", "phone": "555-0104",
				"category_id": group.ID.String(),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "group registration",
			payload: map[string]interface{}{
				"name": "Crew", "email": "crew@uni.edu", "phone": "555-0104",
				"category_id": group.ID.String(), "team_name": "The Crew", "team_size": 4,
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.payload)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}

	if len(store.Participants) != 2 {
		t.Errorf("expected 2 stored participants, got %d", len(store.Participants))
	}
	for _, participant := range store.Participants {
		if participant.Status != models.StatusPending {
			t.Errorf("new registrations must start pending, got %q", participant.Status)
		}
	}
}

func TestListCategoriesEndpoint(t *testing.T) {
	store := testutil.NewFakeStore()
	app := newTestApp(store)

	store.SeedCategory("Solo Singing", "singing", false)
	store.SeedCategory("Group Singing", "singing", true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		Success bool `json:"success"`
		Data    []struct {
			Name    string `json:"name"`
			IsGroup bool   `json:"is_group"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	resp.Body.Close()

	if len(out.Data) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(out.Data))
	}
	// Sorted by name
	if out.Data[0].Name != "Group Singing" || !out.Data[0].IsGroup {
		t.Errorf("unexpected first category: %+v", out.Data[0])
	}
}

func TestProtectedRoutesRequireJWT(t *testing.T) {
	store := testutil.NewFakeStore()
	app := newTestApp(store)

	paths := []string{
		"/api/v1/participants/",
		"/api/v1/auditions/",
		"/api/v1/admin/performances",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without token, got %d", path, resp.StatusCode)
		}
	}
}
