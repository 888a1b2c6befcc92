package handlers

import (
	"strconv"

	"talent-show-backend/internal/middleware"
	"talent-show-backend/internal/services"
	"talent-show-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegisterParticipantRequest struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone" validate:"required"`
	StudentID  string  `json:"student_id"`
	CategoryID string  `json:"category_id" validate:"required,uuid"`
	TeamName   *string `json:"team_name"`
	TeamSize   *int    `json:"team_size" validate:"omitempty,gte=2"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending audition_scheduled selected not_selected"`
}

// ListCategories returns the competition category catalog
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} utils.Response
// @Router /categories [get]
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.registrationSvc.ListCategories()
	if err != nil {
		return utils.Error(c, "Failed to fetch categories", fiber.StatusInternalServerError)
	}

	return utils.Success(c, categories, "Categories retrieved successfully")
}

// RegisterParticipant handles public participant registration
// @Summary Register participant
// @Tags Participants
// @Accept json
// @Produce json
// @Param request body RegisterParticipantRequest true "Participant data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /register [post]
func (h *Handler) RegisterParticipant(c *fiber.Ctx) error {
	var req RegisterParticipantRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	participant, err := h.registrationSvc.RegisterParticipant(services.RegisterParticipantRequest{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		StudentID:  req.StudentID,
		CategoryID: req.CategoryID,
		TeamName:   req.TeamName,
		TeamSize:   req.TeamSize,
	})
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, participant, "Participant registered successfully", fiber.StatusCreated)
}

// ListParticipants returns paginated participants, filterable by status and category
// @Summary List participants
// @Tags Participants
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param category_id query string false "Category filter"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.Response
// @Router /participants [get]
func (h *Handler) ListParticipants(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	participants, total, totalPages, err := h.registrationSvc.ListParticipants(
		c.Query("status"), c.Query("category_id"), page, pageSize)
	if err != nil {
		return utils.Error(c, "Failed to fetch participants", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, participants, meta, "Participants retrieved successfully")
}

// GetParticipant returns a single participant
// @Summary Get participant
// @Tags Participants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Participant ID"
// @Success 200 {object} utils.Response
// @Router /participants/{id} [get]
func (h *Handler) GetParticipant(c *fiber.Ctx) error {
	participantID := c.Params("id")
	if _, err := uuid.Parse(participantID); err != nil {
		return utils.Error(c, "Invalid participant ID", fiber.StatusBadRequest)
	}

	participant, err := h.registrationSvc.GetParticipant(participantID)
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, participant, "Participant retrieved successfully")
}

// UpdateParticipantStatus moves a participant along the status progression
// @Summary Update participant status
// @Tags Participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Participant ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /participants/{id}/status [patch]
func (h *Handler) UpdateParticipantStatus(c *fiber.Ctx) error {
	participantID := c.Params("id")
	if _, err := uuid.Parse(participantID); err != nil {
		return utils.Error(c, "Invalid participant ID", fiber.StatusBadRequest)
	}

	var req UpdateStatusRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	participant, err := h.registrationSvc.UpdateStatus(participantID, req.Status)
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, participant, "Status updated successfully")
}
