package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mesto-decin/parking-permits/backend/internal/setup"
	mw "github.com/mesto-decin/parking-permits/shared/middleware"
	"github.com/mesto-decin/parking-permits/shared/middleware/metrics"
	rl "github.com/mesto-decin/parking-permits/shared/middleware/ratelimiter"
)

// New wires all routes. Rate limits apply per client IP; only permit
// creation is limited since everything else is read-mostly.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// CreatePermit: 1 per second per IP, bursts of 5
		r.With(mw.RateLimit(rl.New(1, 5, 1*time.Hour), mw.GetIP)).
			Post("/permits", h.CreatePermit)
		r.Get("/permits", h.ListPermits)
		r.Get("/permits/{id}", h.GetPermit)

		r.Get("/zones", h.GetZones)
		r.Post("/price", h.QuotePrice)

		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)
		r.Delete("/profile", h.ClearProfile)
		r.Post("/profile/assertion", h.ImportAssertion)
	})

	return r
}
