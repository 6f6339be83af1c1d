package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/charliecatxph/eventra-backend/internal/auth"
	"github.com/charliecatxph/eventra-backend/internal/captcha"
	"github.com/charliecatxph/eventra-backend/internal/config"
	"github.com/charliecatxph/eventra-backend/internal/database"
	"github.com/charliecatxph/eventra-backend/internal/handlers"
	"github.com/charliecatxph/eventra-backend/internal/mailer"
	"github.com/charliecatxph/eventra-backend/internal/notifier"
	"github.com/charliecatxph/eventra-backend/internal/qr"
	"github.com/charliecatxph/eventra-backend/internal/registration"
	"github.com/charliecatxph/eventra-backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("MODE") != "PRODUCTION" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Collaborators
	store, err := storage.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}
	verifier := captcha.NewHCaptcha(cfg.HCaptchaSecret)
	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.IsProduction())
	notify := notifier.NewDBNotifier(db)

	registrationService := registration.NewService(db, registration.Deps{
		Storage:  store,
		Captcha:  verifier,
		Mailer:   mail,
		QR:       qr.PNGRenderer{},
		Notifier: notify,
		FromAddr: cfg.MailFrom,
		Origin:   cfg.Origin,
		TmpDir:   cfg.UploadDir,
	})

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db, store)
	attendHandler := handlers.NewAttendHandler(registrationService)
	eventHandler := handlers.NewEventHandler(db, store, authHandler, cfg.UploadDir)
	attendeeHandler := handlers.NewAttendeeHandler(db, store, mail, authHandler, cfg.MailFrom, cfg.Origin)
	notificationHandler := handlers.NewNotificationHandler(db, authHandler)
	bizMatchHandler := handlers.NewBizMatchHandler(db, store, authHandler, cfg.UploadDir)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, attendHandler, eventHandler, attendeeHandler, notificationHandler, bizMatchHandler)

	// Start Server
	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
