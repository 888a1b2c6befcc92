package handlers

import (
	"errors"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/middleware"
	"talent-show-backend/internal/services"
	"talent-show-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	authSvc         *services.AuthService
	registrationSvc *services.RegistrationService
	auditionSvc     *services.AuditionService
	announcementSvc *services.AnnouncementService
	notificationSvc *services.NotificationService
	votingSvc       *services.VotingService
	cfg             *config.Config
}

func NewHandler(
	authSvc *services.AuthService,
	registrationSvc *services.RegistrationService,
	auditionSvc *services.AuditionService,
	announcementSvc *services.AnnouncementService,
	notificationSvc *services.NotificationService,
	votingSvc *services.VotingService,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authSvc:         authSvc,
		registrationSvc: registrationSvc,
		auditionSvc:     auditionSvc,
		announcementSvc: announcementSvc,
		notificationSvc: notificationSvc,
		votingSvc:       votingSvc,
		cfg:             cfg,
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	// Public routes
	auth := router.Group("/auth")
	{
		auth.Post("/login", h.Login)
	}

	router.Get("/categories", h.ListCategories)
	router.Post("/register", h.RegisterParticipant)
	router.Get("/announcements", h.ListPublicAnnouncements)

	// Public voting surface (no authentication)
	vote := router.Group("/vote")
	{
		vote.Get("/performances", h.ListVotablePerformances)
		vote.Post("/performances/:id", h.CastVote)
	}

	// Participant notifications (weak identity: keyed by participant id)
	router.Get("/participants/:id/notifications", h.ListNotifications)
	router.Get("/participants/:id/notifications/unread-count", h.UnreadNotificationCount)
	router.Get("/participants/:id/notifications/stream", h.StreamNotifications)
	router.Patch("/notifications/:id/read", h.MarkNotificationRead)

	// Protected routes (JWT required)
	protected := router.Group("", middleware.JWTMiddleware(h.cfg))
	{
		protected.Get("/profile", h.GetProfile)

		// Registration management
		participants := protected.Group("/participants", middleware.OrganizerOrAdmin)
		{
			participants.Get("/", h.ListParticipants)
			participants.Get("/:id", h.GetParticipant)
			participants.Patch("/:id/status", h.UpdateParticipantStatus)
		}

		// Audition scheduling
		auditions := protected.Group("/auditions", middleware.OrganizerOrAdmin)
		{
			auditions.Post("/", h.ScheduleAudition)
			auditions.Get("/", h.ListAuditions)
			auditions.Get("/:id", h.GetAudition)
			auditions.Patch("/:id/result", h.RecordAuditionResult)
		}

		// Announcement broadcast
		announcements := protected.Group("/announcements", middleware.OrganizerOrAdmin)
		{
			announcements.Post("/", h.CreateAnnouncement)
			announcements.Patch("/:id", h.UpdateAnnouncement)
			announcements.Patch("/:id/toggle", h.ToggleAnnouncement)
		}

		// Admin area: finalist curation + voting dashboards
		admin := protected.Group("/admin", middleware.AdminOnly)
		{
			admin.Post("/users", h.CreateUser)
			admin.Get("/announcements", h.ListAllAnnouncements)

			admin.Get("/performances/candidates", h.ListCandidates)
			admin.Get("/performances/top", h.TopPerformances)
			admin.Get("/performances", h.ListPerformanceTallies)
			admin.Post("/performances", h.CreatePerformance)
			admin.Post("/performances/:id/image", h.UploadPerformanceImage)
			admin.Patch("/performances/:id/toggle", h.TogglePerformance)
			admin.Delete("/performances/:id", h.DeletePerformance)

			admin.Get("/voting/qrcode", h.VotingPageQRCode)
		}
	}
}

// ErrorHandler handles global errors
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return utils.Error(c, message, code)
}

// serviceErrorStatus maps distinguished service outcomes to HTTP statuses.
// The duplicate-vote conflict stays a distinct 409 so clients can treat it
// as "already voted" rather than a generic failure. Errors that are not
// service sentinels (a failed storage call, for instance) are the server's
// fault and map to 500.
func serviceErrorStatus(err error) int {
	switch err {
	case services.ErrAlreadyVoted,
		services.ErrAuditionExists,
		services.ErrResultAlreadyRecorded:
		return fiber.StatusConflict
	case services.ErrPerformanceNotFound,
		services.ErrParticipantNotFound,
		services.ErrCategoryNotFound,
		services.ErrAuditionNotFound,
		services.ErrAnnouncementNotFound,
		services.ErrNotificationNotFound:
		return fiber.StatusNotFound
	case services.ErrPerformanceInactive:
		return fiber.StatusUnprocessableEntity
	case services.ErrNotRecipient:
		return fiber.StatusForbidden
	}

	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
