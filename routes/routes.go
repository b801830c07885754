package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/upb/casting-agency/app"
	"github.com/upb/casting-agency/handlers"
	"github.com/upb/casting-agency/internal/auth"
	"github.com/upb/casting-agency/internal/observability"
	"github.com/upb/casting-agency/middleware"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// Options holds everything the router needs
type Options struct {
	Guard          *middleware.AuthMiddleware
	Actors         *handlers.ActorHandler
	Movies         *handlers.MovieHandler
	Health         *handlers.HealthHandler
	Logger         *zap.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
	MetricsEnabled bool
	MetricsPath    string
}

// protectedRoute binds one operation to the single permission it requires
type protectedRoute struct {
	method     string
	pattern    string
	permission string
	handler    middleware.ClaimsHandlerFunc
}

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	cfg := deps.Config
	return New(Options{
		Guard:          deps.AuthMiddleware,
		Actors:         deps.ActorHandler,
		Movies:         deps.MovieHandler,
		Health:         deps.HealthHandler,
		Logger:         deps.Logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		MetricsEnabled: cfg.Observability.MetricsEnabled,
		MetricsPath:    cfg.Observability.MetricsPath,
	})
}

// New builds the router from explicit components
func New(opts Options) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:*", "https://*"}
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	r := chi.NewRouter()

	// Core middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(observability.RequestLogger(opts.Logger))
	r.Use(observability.InstrumentHTTP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(opts.RequestTimeout))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", opts.Health.HandleHealth)
	r.Get("/readyz", opts.Health.HandleReadiness)

	if opts.MetricsEnabled {
		r.Handle(opts.MetricsPath, promhttp.Handler())
	}

	for _, route := range resourceRoutes(opts.Actors, opts.Movies) {
		r.Method(route.method, route.pattern, opts.Guard.Authorized(route.permission, route.handler))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteMethodNotAllowed(w)
	})

	return r
}

// resourceRoutes is the static operation table. Ids only match integers,
// anything else falls through to the 404 handler before the guard runs.
func resourceRoutes(actors *handlers.ActorHandler, movies *handlers.MovieHandler) []protectedRoute {
	return []protectedRoute{
		{http.MethodGet, "/actors", auth.PermGetActors, actors.List},
		{http.MethodPost, "/actors", auth.PermPostActors, actors.Create},
		{http.MethodPatch, "/actors/{id:[0-9]+}", auth.PermPatchActors, actors.Update},
		{http.MethodDelete, "/actors/{id:[0-9]+}", auth.PermDeleteActors, actors.Delete},

		{http.MethodGet, "/movies", auth.PermGetMovies, movies.List},
		{http.MethodPost, "/movies", auth.PermPostMovies, movies.Create},
		{http.MethodPatch, "/movies/{id:[0-9]+}", auth.PermPatchMovies, movies.Update},
		{http.MethodDelete, "/movies/{id:[0-9]+}", auth.PermDeleteMovies, movies.Delete},
	}
}
