package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"talent-show-backend/internal/middleware"
	"talent-show-backend/internal/utils"
	"talent-show-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MarkReadRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,uuid"`
}

// ListNotifications returns a participant's notifications, newest first
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Param id path string true "Participant ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} utils.Response
// @Router /participants/{id}/notifications [get]
func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	participantID := c.Params("id")
	if _, err := uuid.Parse(participantID); err != nil {
		return utils.Error(c, "Invalid participant ID", fiber.StatusBadRequest)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	notifications, total, totalPages, err := h.notificationSvc.ListNotifications(participantID, page, pageSize)
	if err != nil {
		return utils.Error(c, "Failed to fetch notifications", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, notifications, meta, "Notifications retrieved successfully")
}

// UnreadNotificationCount returns the unread badge count
// @Summary Unread notification count
// @Tags Notifications
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} utils.Response
// @Router /participants/{id}/notifications/unread-count [get]
func (h *Handler) UnreadNotificationCount(c *fiber.Ctx) error {
	participantID := c.Params("id")
	if _, err := uuid.Parse(participantID); err != nil {
		return utils.Error(c, "Invalid participant ID", fiber.StatusBadRequest)
	}

	count, err := h.notificationSvc.UnreadCount(participantID)
	if err != nil {
		return utils.Error(c, "Failed to count notifications", fiber.StatusInternalServerError)
	}

	return utils.Success(c, fiber.Map{"unread": count}, "Unread count retrieved successfully")
}

// MarkNotificationRead marks one notification read for its recipient
// @Summary Mark notification read
// @Tags Notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Param request body MarkReadRequest true "Recipient"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /notifications/{id}/read [patch]
func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	notificationID := c.Params("id")
	if _, err := uuid.Parse(notificationID); err != nil {
		return utils.Error(c, "Invalid notification ID", fiber.StatusBadRequest)
	}

	var req MarkReadRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	if err := h.notificationSvc.MarkRead(notificationID, req.ParticipantID); err != nil {
		return utils.Error(c, err.Error(), serviceErrorStatus(err))
	}

	return utils.Success(c, nil, "Notification marked as read")
}

// StreamNotifications pushes new notification rows to the client over SSE.
// Best-effort latency only; correctness never depends on this stream.
// @Summary Stream notifications (SSE)
// @Tags Notifications
// @Produce text/event-stream
// @Param id path string true "Participant ID"
// @Router /participants/{id}/notifications/stream [get]
func (h *Handler) StreamNotifications(c *fiber.Ctx) error {
	participantID := c.Params("id")
	if _, err := uuid.Parse(participantID); err != nil {
		return utils.Error(c, "Invalid participant ID", fiber.StatusBadRequest)
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	notificationSvc := h.notificationSvc

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		cursor := time.Now()

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for range ticker.C {
			notifications, err := notificationSvc.ListSince(participantID, cursor)
			if err != nil {
				logger.Error("SSE notification query failed: ", err)
				continue
			}

			if len(notifications) == 0 {
				// Keepalive so proxies don't drop the connection
				w.WriteString(":\n\n")
				if err := w.Flush(); err != nil {
					return
				}
				continue
			}

			cursor = notifications[len(notifications)-1].CreatedAt

			for _, notification := range notifications {
				payload, _ := json.Marshal(notification)
				fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload)
			}

			if err := w.Flush(); err != nil {
				// Client disconnected
				return
			}
		}
	})

	return nil
}
