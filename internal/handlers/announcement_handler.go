package handlers

import (
	"strconv"

	"talent-show-backend/internal/middleware"
	"talent-show-backend/internal/services"
	"talent-show-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateAnnouncementRequest struct {
	Title      string  `json:"title" validate:"required"`
	Body       string  `json:"body" validate:"required"`
	CategoryID *string `json:"category_id" validate:"omitempty,uuid"`
	IsActive   *bool   `json:"is_active"`
}

type UpdateAnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreateAnnouncement publishes a message globally or per category
// @Summary Create announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAnnouncementRequest true "Announcement data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /announcements [post]
func (h *Handler) CreateAnnouncement(c *fiber.Ctx) error {
	var req CreateAnnouncementRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	announcement, err := h.announcementSvc.CreateAnnouncement(services.CreateAnnouncementRequest{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		IsActive:   isActive,
		CreatedBy:  userID,
	})
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, announcement, "Announcement created successfully", fiber.StatusCreated)
}

// UpdateAnnouncement edits title/body
// @Summary Update announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Param request body UpdateAnnouncementRequest true "Fields to update"
// @Success 200 {object} utils.Response
// @Router /announcements/{id} [patch]
func (h *Handler) UpdateAnnouncement(c *fiber.Ctx) error {
	announcementID := c.Params("id")
	if _, err := uuid.Parse(announcementID); err != nil {
		return utils.Error(c, "Invalid announcement ID", fiber.StatusBadRequest)
	}

	var req UpdateAnnouncementRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	announcement, err := h.announcementSvc.UpdateAnnouncement(announcementID, req.Title, req.Body)
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, announcement, "Announcement updated successfully")
}

// ToggleAnnouncement flips visibility; activation re-triggers the fan-out
// @Summary Toggle announcement
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Success 200 {object} utils.Response
// @Router /announcements/{id}/toggle [patch]
func (h *Handler) ToggleAnnouncement(c *fiber.Ctx) error {
	announcementID := c.Params("id")
	if _, err := uuid.Parse(announcementID); err != nil {
		return utils.Error(c, "Invalid announcement ID", fiber.StatusBadRequest)
	}

	announcement, err := h.announcementSvc.ToggleAnnouncement(announcementID)
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, announcement, "Announcement toggled successfully")
}

// ListPublicAnnouncements returns active announcements, optionally scoped
// @Summary List active announcements
// @Tags Announcements
// @Produce json
// @Param category_id query string false "Category filter"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} utils.Response
// @Router /announcements [get]
func (h *Handler) ListPublicAnnouncements(c *fiber.Ctx) error {
	return h.listAnnouncements(c, true)
}

// ListAllAnnouncements returns every announcement including inactive ones
// @Summary List all announcements
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /admin/announcements [get]
func (h *Handler) ListAllAnnouncements(c *fiber.Ctx) error {
	return h.listAnnouncements(c, false)
}

func (h *Handler) listAnnouncements(c *fiber.Ctx, activeOnly bool) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	announcements, total, totalPages, err := h.announcementSvc.ListAnnouncements(
		activeOnly, c.Query("category_id"), page, pageSize)
	if err != nil {
		return utils.Error(c, "Failed to fetch announcements", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, announcements, meta, "Announcements retrieved successfully")
}
