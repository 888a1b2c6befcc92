package handlers

import (
	"errors"
	"net/http"
	"testing"

	"talent-show-backend/internal/services"
)

func TestServiceErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate vote", services.ErrAlreadyVoted, http.StatusConflict},
		{"audition exists", services.ErrAuditionExists, http.StatusConflict},
		{"performance not found", services.ErrPerformanceNotFound, http.StatusNotFound},
		{"inactive performance", services.ErrPerformanceInactive, http.StatusUnprocessableEntity},
		{"foreign notification", services.ErrNotRecipient, http.StatusForbidden},
		{"team name missing", services.ErrTeamNameRequired, http.StatusBadRequest},
		{"duplicate registration", services.ErrEmailRegistered, http.StatusBadRequest},
		{"unexpected failure", errors.New("connection reset by peer"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serviceErrorStatus(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
