package main

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"reservasport/internal/api"
	"reservasport/internal/auth"
	"reservasport/internal/config"
	"reservasport/internal/service"
	"reservasport/internal/store"
)

func main() {
	godotenv.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	st := store.New(cfg.DataFile)
	if err := st.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize data file")
	}

	clock := clockwork.NewRealClock()
	notify := service.NewNotifyService(cfg.AdminNotifyEmail)
	svc := service.NewReservationService(st, notify, clock)
	authSvc := service.NewAdminAuthService(st, cfg, clock)
	jobs := service.NewJobService(st, cfg, clock)

	userHandler := api.NewUserReservationHandler(svc)
	adminHandler := api.NewAdminHandler(svc)
	authHandler := api.NewAdminAuthHandler(authSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/health", userHandler.Health).Methods("GET")
	r.HandleFunc("/api/courts", userHandler.ListCourts).Methods("GET")
	r.HandleFunc("/api/availability", userHandler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/reservations", userHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations", userHandler.ListReservations).Methods("GET")
	r.HandleFunc("/api/admin/login", authHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(authSvc))
	admin.HandleFunc("/reservations", adminHandler.ListReservations).Methods("GET")
	admin.HandleFunc("/reservations/{id}", adminHandler.CancelReservation).Methods("DELETE")

	c := cron.New()
	if _, err := c.AddFunc("@every 30m", func() {
		if err := jobs.PurgeExpiredTokens(); err != nil {
			log.Error().Err(err).Msg("token purge job failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule token purge job")
	}
	c.Start()

	handler := api.RequestID(r)
	handler = handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(handler)
	handler = handlers.LoggingHandler(os.Stdout, handler)
	handler = handlers.RecoveryHandler()(handler)

	log.Info().Str("port", cfg.Port).Msg("server running")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
