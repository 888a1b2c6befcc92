package handlers

import (
	"talent-show-backend/internal/middleware"
	"talent-show-backend/internal/services"
	"talent-show-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CastVoteRequest carries the opaque client-generated voter token. The
// token has no structure or length contract beyond an upper bound; short
// tokens are valid.
type CastVoteRequest struct {
	VoterToken  string `json:"voter_token" validate:"required,max=128"`
	Fingerprint string `json:"fingerprint"`
}

// ListVotablePerformances is the public voting list: active performances
// with vote counts, ordered by display order. An optional voter_token query
// parameter flags entries that token has already voted for (advisory only).
// @Summary List votable performances
// @Tags Voting
// @Produce json
// @Param voter_token query string false "Opaque voter token"
// @Success 200 {object} utils.Response
// @Router /vote/performances [get]
func (h *Handler) ListVotablePerformances(c *fiber.Ctx) error {
	performances, err := h.votingSvc.ListVotablePerformances(c.Query("voter_token"))
	if err != nil {
		return utils.Error(c, "Failed to fetch performances", fiber.StatusInternalServerError)
	}

	return utils.Success(c, performances, "Performances retrieved successfully")
}

// CastVote records one like for a performance. The voter token is an opaque
// client-generated identifier; duplicates surface as a distinct 409 so the
// client can treat the outcome as "already voted".
// @Summary Cast a vote
// @Tags Voting
// @Accept json
// @Produce json
// @Param id path string true "Performance ID"
// @Param request body CastVoteRequest true "Voter token"
// @Success 201 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 422 {object} utils.Response
// @Router /vote/performances/{id} [post]
func (h *Handler) CastVote(c *fiber.Ctx) error {
	performanceID := c.Params("id")
	if _, err := uuid.Parse(performanceID); err != nil {
		return utils.Error(c, "Invalid performance ID", fiber.StatusBadRequest)
	}

	var req CastVoteRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	fingerprint := req.Fingerprint
	if fingerprint == "" {
		fingerprint = c.Get("User-Agent")
	}

	vote, err := h.votingSvc.RecordVote(performanceID, req.VoterToken, fingerprint)
	if err != nil {
		if err == services.ErrAlreadyVoted {
			return utils.Error(c, err.Error(), fiber.StatusConflict)
		}
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, fiber.Map{
		"performance_id": vote.PerformanceID,
		"voted_at":       vote.CreatedAt,
	}, "Vote recorded successfully", fiber.StatusCreated)
}
