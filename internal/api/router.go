package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/brejolabs/barbershop-booking/internal/auth"
	"github.com/brejolabs/barbershop-booking/internal/booking"
	"github.com/brejolabs/barbershop-booking/internal/tenant"
)

type RouterConfig struct {
	Bookings          *booking.Service
	Tenants           *tenant.Service
	Auth              *auth.Service
	PgPool            *pgxpool.Pool
	Redis             *redis.Client
	DefaultTenantSlug string
	Env               string
	Version           string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints need the raw connections; tests that wire fake
	// repositories run without them.
	if cfg.PgPool != nil && cfg.Redis != nil {
		health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
		r.Get("/health/live", health.Liveness)
		r.Get("/health/ready", health.Readiness)
	}

	h := &handlers{
		bookings:          cfg.Bookings,
		tenants:           cfg.Tenants,
		auth:              cfg.Auth,
		defaultTenantSlug: cfg.DefaultTenantSlug,
	}

	// Public booking widget endpoints
	r.Post("/api/agendamento", h.createBooking)
	r.Get("/api/horarios-disponiveis/{date}", h.availableTimes)
	r.Post("/api/cadastro", h.registerClient)

	// Public directory
	r.Get("/api/public/barbershops", h.listBarbershops)
	r.Get("/api/public/barbershops/{slug}", h.getBarbershop)

	// Auth
	r.Post("/api/auth/login", h.login)

	// Authenticated dashboard endpoints
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Auth))

		r.Get("/api/auth/me", h.currentUser)

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(auth.RoleTenantAdmin, auth.RoleTenantUser))
			r.Get("/api/agendamentos", h.listAppointments)
			r.Put("/api/agendamentos/{id}/status", h.updateAppointmentStatus)
			r.Delete("/api/agendamentos/{id}", h.cancelAppointment)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(auth.RoleTenantAdmin))
			r.Get("/api/tenant/config", h.getTenantConfig)
			r.Put("/api/tenant/config", h.updateTenantConfig)
		})
	})

	return r
}
