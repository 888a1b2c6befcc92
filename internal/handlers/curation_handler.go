package handlers

import (
	"strconv"

	"talent-show-backend/internal/middleware"
	"talent-show-backend/internal/services"
	"talent-show-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreatePerformanceRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,uuid"`
	Title         string `json:"title" validate:"required"`
	ImageURL      string `json:"image_url"`
	DisplayOrder  *int   `json:"display_order" validate:"omitempty,gte=1"`
}

// ListCandidates returns selected participants eligible for curation
// @Summary List finalist candidates
// @Tags Curation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /admin/performances/candidates [get]
func (h *Handler) ListCandidates(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	candidates, total, totalPages, err := h.votingSvc.ListCandidates(page, pageSize)
	if err != nil {
		return utils.Error(c, "Failed to fetch candidates", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, candidates, meta, "Candidates retrieved successfully")
}

// CreatePerformance curates a selected participant into a votable entry
// @Summary Create performance
// @Tags Curation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePerformanceRequest true "Performance data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /admin/performances [post]
func (h *Handler) CreatePerformance(c *fiber.Ctx) error {
	var req CreatePerformanceRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	performance, err := h.votingSvc.CreatePerformance(services.CreatePerformanceRequest{
		ParticipantID: req.ParticipantID,
		Title:         req.Title,
		ImageURL:      req.ImageURL,
		DisplayOrder:  req.DisplayOrder,
	})
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, performance, "Performance created successfully", fiber.StatusCreated)
}

// UploadPerformanceImage attaches an uploaded image to a performance
// @Summary Upload performance image
// @Tags Curation
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Performance ID"
// @Param image formData file true "Image file"
// @Success 200 {object} utils.Response
// @Router /admin/performances/{id}/image [post]
func (h *Handler) UploadPerformanceImage(c *fiber.Ctx) error {
	performanceID := c.Params("id")
	if _, err := uuid.Parse(performanceID); err != nil {
		return utils.Error(c, "Invalid performance ID", fiber.StatusBadRequest)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.Error(c, "Image file is required", fiber.StatusBadRequest)
	}

	if file.Size > h.cfg.MaxUploadSize {
		return utils.Error(c, "File too large", fiber.StatusBadRequest)
	}

	if err := utils.ValidateImageFile(file); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	filename := utils.GenerateUniqueFilename(file.Filename)
	if err := utils.SaveUploadedFile(file, h.cfg.ImageDir, filename); err != nil {
		return utils.Error(c, "Failed to save image", fiber.StatusInternalServerError)
	}

	performance, err := h.votingSvc.SetPerformanceImage(performanceID, "/performances/"+filename)
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, performance, "Image uploaded successfully")
}

// TogglePerformance flips voting eligibility, votes are retained
// @Summary Toggle performance
// @Tags Curation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Performance ID"
// @Success 200 {object} utils.Response
// @Router /admin/performances/{id}/toggle [patch]
func (h *Handler) TogglePerformance(c *fiber.Ctx) error {
	performanceID := c.Params("id")
	if _, err := uuid.Parse(performanceID); err != nil {
		return utils.Error(c, "Invalid performance ID", fiber.StatusBadRequest)
	}

	performance, err := h.votingSvc.TogglePerformance(performanceID)
	if err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, performance, "Performance toggled successfully")
}

// DeletePerformance removes a performance and cascades to all of its votes.
// The caller must pass confirm=true; this is irreversible.
// @Summary Delete performance
// @Tags Curation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Performance ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /admin/performances/{id} [delete]
func (h *Handler) DeletePerformance(c *fiber.Ctx) error {
	performanceID := c.Params("id")
	if _, err := uuid.Parse(performanceID); err != nil {
		return utils.Error(c, "Invalid performance ID", fiber.StatusBadRequest)
	}

	if c.Query("confirm") != "true" {
		return utils.Error(c, "Deleting a performance removes all of its votes; pass confirm=true to proceed", fiber.StatusBadRequest)
	}

	if err := h.votingSvc.DeletePerformance(performanceID); err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, nil, "Performance and its votes deleted")
}

// ListPerformanceTallies is the admin list: all performances with counts
// @Summary List performances with vote counts
// @Tags Curation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /admin/performances [get]
func (h *Handler) ListPerformanceTallies(c *fiber.Ctx) error {
	tallies, err := h.votingSvc.ListAllTallies()
	if err != nil {
		return utils.Error(c, "Failed to fetch performances", fiber.StatusInternalServerError)
	}

	return utils.Success(c, tallies, "Performances retrieved successfully")
}

// TopPerformances returns the most-voted performance per category
// @Summary Top performance per category
// @Tags Curation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /admin/performances/top [get]
func (h *Handler) TopPerformances(c *fiber.Ctx) error {
	top, err := h.votingSvc.TopPerformanceByCategory()
	if err != nil {
		return utils.Error(c, "Failed to compute top performances", fiber.StatusInternalServerError)
	}

	return utils.Success(c, top, "Top performances retrieved successfully")
}

// VotingPageQRCode generates a QR code PNG linking the public voting page
// @Summary Voting page QR code
// @Tags Curation
// @Produce json
// @Security BearerAuth
// @Success 201 {object} utils.Response
// @Router /admin/voting/qrcode [get]
func (h *Handler) VotingPageQRCode(c *fiber.Ctx) error {
	votingURL := h.cfg.PublicBaseURL + "/vote"

	filename, err := utils.GenerateQRCodeImage(votingURL, h.cfg.QRDir)
	if err != nil {
		return utils.Error(c, "Failed to generate QR code", fiber.StatusInternalServerError)
	}

	return utils.Success(c, fiber.Map{
		"url":     votingURL,
		"qr_path": "/qrcodes/" + filename,
	}, "QR code generated successfully", fiber.StatusCreated)
}
