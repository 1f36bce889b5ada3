package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"linkfluence/internal/core/port"
)

// Handler contains dependencies and routes. It is the inbound HTTP
// adapter: thin decoding and status mapping around the usecases, with
// structured logging for internal failures. Routes mirror the JSON API
// the dashboards poll.
type Handler struct {
	engagement port.EngagementService
	campaigns  port.CampaignService
	identity   port.IdentityService
	logger     *slog.Logger
	router     chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(engagement port.EngagementService, campaigns port.CampaignService, identity port.IdentityService, logger *slog.Logger) *Handler {
	h := &Handler{
		engagement: engagement,
		campaigns:  campaigns,
		identity:   identity,
		logger:     logger,
	}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)
		r.Get("/users/{userID}", h.handleResolveUser)

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleListCampaigns)
			r.Get("/{campaignID}", h.handleGetCampaign)
			r.Patch("/{campaignID}", h.handleUpdateCampaign)
			r.Delete("/{campaignID}", h.handleDeleteCampaign)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Post("/", h.handleSubmitApplication)
			r.Get("/campaign/{campaignID}", h.handleCampaignApplications)
			r.Get("/creator/{creatorID}", h.handleCreatorApplications)
			r.Patch("/{applicationID}/status", h.handleResolveApplication)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", h.handlePostMessage)
			r.Get("/conversation", h.handleConversation)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.handleNotifications)
			r.Post("/{notificationID}/read", h.handleMarkRead)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
