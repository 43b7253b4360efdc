package api

import (
	"net/http"
	"time"

	"github.com/eventroop/server/internal/api/handlers"
	"github.com/eventroop/server/internal/api/middleware"
	"github.com/eventroop/server/internal/config"
	"github.com/eventroop/server/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(services *service.Services, logger zerolog.Logger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	eventHandler := handlers.NewEventHandler(services.Auth, services.Event, services.Membership)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/profile", authHandler.Profile)
			})
		})

		// Event routes (all protected)
		r.Route("/events", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/", eventHandler.List)
			r.Post("/", eventHandler.Create)
			r.Get("/my-events/{id}", eventHandler.ListByOwner)
			r.Put("/{id}", eventHandler.Update)
			r.Delete("/{id}", eventHandler.Delete)
			r.Post("/join-event/{eventId}", eventHandler.Join)
		})
	})

	return r
}
