package handlers

import (
	"strconv"
	"time"

	"talent-show-backend/internal/middleware"
	"talent-show-backend/internal/services"
	"talent-show-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ScheduleAuditionRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,uuid"`
	ScheduledDate string `json:"scheduled_date" validate:"required"`
	Venue         string `json:"venue" validate:"required"`
	Notes         string `json:"notes"`
}

type RecordResultRequest struct {
	Result string `json:"result" validate:"required,oneof=qualified not_qualified"`
	Notes  string `json:"notes"`
}

// ScheduleAudition assigns date and venue to a participant's audition
// @Summary Schedule audition
// @Tags Auditions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScheduleAuditionRequest true "Audition data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /auditions [post]
func (h *Handler) ScheduleAudition(c *fiber.Ctx) error {
	var req ScheduleAuditionRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	scheduledDate, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		return utils.Error(c, "Invalid scheduled_date format", fiber.StatusBadRequest)
	}

	audition, err := h.auditionSvc.ScheduleAudition(services.ScheduleAuditionRequest{
		ParticipantID: req.ParticipantID,
		ScheduledDate: scheduledDate,
		Venue:         req.Venue,
		Notes:         req.Notes,
	})
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, audition, "Audition scheduled successfully", fiber.StatusCreated)
}

// RecordAuditionResult records the outcome of a pending audition
// @Summary Record audition result
// @Tags Auditions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Audition ID"
// @Param request body RecordResultRequest true "Result"
// @Success 200 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /auditions/{id}/result [patch]
func (h *Handler) RecordAuditionResult(c *fiber.Ctx) error {
	auditionID := c.Params("id")
	if _, err := uuid.Parse(auditionID); err != nil {
		return utils.Error(c, "Invalid audition ID", fiber.StatusBadRequest)
	}

	var req RecordResultRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	audition, err := h.auditionSvc.RecordResult(auditionID, req.Result, req.Notes)
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, audition, "Audition result recorded successfully")
}

// GetAudition returns a single audition with its participant
// @Summary Get audition
// @Tags Auditions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Audition ID"
// @Success 200 {object} utils.Response
// @Router /auditions/{id} [get]
func (h *Handler) GetAudition(c *fiber.Ctx) error {
	auditionID := c.Params("id")
	if _, err := uuid.Parse(auditionID); err != nil {
		return utils.Error(c, "Invalid audition ID", fiber.StatusBadRequest)
	}

	audition, err := h.auditionSvc.GetAudition(auditionID)
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, audition, "Audition retrieved successfully")
}

// ListAuditions returns paginated auditions
// @Summary List auditions
// @Tags Auditions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.Response
// @Router /auditions [get]
func (h *Handler) ListAuditions(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	auditions, total, totalPages, err := h.auditionSvc.ListAuditions(page, pageSize)
	if err != nil {
		return utils.Error(c, "Failed to fetch auditions", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, auditions, meta, "Auditions retrieved successfully")
}
