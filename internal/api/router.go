package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/medlyfe/scheduling-service/internal/appointment"
	"github.com/medlyfe/scheduling-service/internal/diagnosis"
	"github.com/medlyfe/scheduling-service/internal/healthlog"
	"github.com/medlyfe/scheduling-service/internal/medicine"
)

type RouterConfig struct {
	Appointments *appointment.Service
	Medicines    *medicine.Service
	Diagnosis    *diagnosis.Service
	HealthLog    *healthlog.Service
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Endpoints requiring a caller identity
	r.Group(func(r chi.Router) {
		r.Use(RequireActor)

		r.Post("/appointments", createAppointmentHandler(cfg.Appointments))
		r.Get("/appointments", listAppointmentsHandler(cfg.Appointments))
		r.Get("/appointments/{id}", getAppointmentHandler(cfg.Appointments))
		r.Post("/appointments/{id}/approve", transitionHandler(cfg.Appointments, appointment.StatusApproved))
		r.Post("/appointments/{id}/cancel", transitionHandler(cfg.Appointments, appointment.StatusCancelled))
		r.Post("/appointments/{id}/complete", transitionHandler(cfg.Appointments, appointment.StatusCompleted))

		r.Post("/health-metrics", recordHealthEntryHandler(cfg.HealthLog))
		r.Get("/health-metrics", listHealthEntriesHandler(cfg.HealthLog))
	})

	// Public lookup endpoints
	r.Get("/medicines/{tag}/substitutes", substituteLookupHandler(cfg.Medicines))
	r.Post("/diagnosis/match", matchDiagnosisHandler(cfg.Diagnosis))

	return r
}
