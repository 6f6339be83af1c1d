package handlers

import (
	"net/http"

	"github.com/charliecatxph/eventra-backend/internal/auth"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(
	r *chi.Mux,
	authHandler *auth.AuthHandler,
	attendHandler *AttendHandler,
	eventHandler *EventHandler,
	attendeeHandler *AttendeeHandler,
	notificationHandler *NotificationHandler,
	bizMatchHandler *BizMatchHandler,
) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Eventra API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:   "http",
			Scheme: "bearer",
		},
	}
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Public routes
	huma.Post(api, "/attend-ord-ev", attendHandler.HandleAttend, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Post(api, "/login", authHandler.HandleLogin)
	huma.Post(api, "/logout", authHandler.HandleLogout)
	huma.Post(api, "/register", authHandler.HandleRegister)
	huma.Post(api, "/get-user-data", authHandler.HandleUserData)
	huma.Post(api, "/get-available-events", eventHandler.HandleAvailableEvents)
	huma.Post(api, "/fetch-ord-event", eventHandler.HandleFetchEvent)
	huma.Post(api, "/get-ord-event-data", eventHandler.HandleFetchEvent)
	huma.Post(api, "/fetch-ord-event-analytics", eventHandler.HandleAnalytics)

	// Protected routes; each handler authorizes through auth.AuthInput.
	huma.Post(api, "/upload-ord-event", eventHandler.HandleUploadEvent)
	huma.Post(api, "/fetch-events", eventHandler.HandleFetchEvents)
	huma.Post(api, "/delete-event-ord", eventHandler.HandleDeleteEvent)
	huma.Post(api, "/get-atendees", attendeeHandler.HandleGetAttendees)
	huma.Post(api, "/update-atendee-org", attendeeHandler.HandleUpdateAttendee)
	huma.Post(api, "/delete-atendee", attendeeHandler.HandleDeleteAttendee)
	huma.Post(api, "/resend-email-ord", attendeeHandler.HandleResendEmail)
	huma.Post(api, "/fetch-notifications", notificationHandler.HandleFetchNotifications)
	huma.Post(api, "/upload-biz-match", bizMatchHandler.HandleUploadBizMatch)
}
