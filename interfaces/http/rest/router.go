package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"campusnav-backend/application/ports"
	appservices "campusnav-backend/application/services"
	"campusnav-backend/interfaces/http/rest/handlers"
	"campusnav-backend/interfaces/http/rest/middleware"
	"campusnav-backend/pkg/api"
	"campusnav-backend/pkg/observability"
)

// Options toggles the optional router surfaces.
type Options struct {
	EnableCORS    bool
	EnableMetrics bool
}

// Router creates and configures the HTTP router
type Router struct {
	service   *appservices.NavigationService
	artifacts ports.ArtifactStore
	narration http.Handler
	metrics   *observability.Collector
	options   Options
	logger    *zap.Logger
}

// NewRouter creates a new router instance. The narration handler is the
// websocket feed; pass nil to leave it unmounted.
func NewRouter(
	service *appservices.NavigationService,
	artifacts ports.ArtifactStore,
	narration http.Handler,
	metrics *observability.Collector,
	options Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		service:   service,
		artifacts: artifacts,
		narration: narration,
		metrics:   metrics,
		options:   options,
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestID())
	router.Use(chimiddleware.Recoverer)

	// CORS configuration
	if rt.options.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.options.EnableMetrics && rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
			rt.metrics.GetRegistry(),
			promhttp.HandlerOpts{},
		))
	}

	// The narration feed upgrades the connection, so it stays outside the
	// logging and metrics wrappers.
	if rt.narration != nil {
		router.Method(http.MethodGet, "/ws", rt.narration)
	}

	router.Group(func(r chi.Router) {
		r.Use(middleware.Logger(rt.logger))
		if rt.options.EnableMetrics && rt.metrics != nil {
			r.Use(middleware.Metrics(rt.metrics))
		}

		// API documentation
		r.Get("/api/swagger", api.SwaggerHandler())
		r.Get("/api/docs", api.SwaggerUIHandler())

		// API v1 routes
		r.Route("/api/v1", func(r chi.Router) {
			navigationHandler := handlers.NewNavigationHandler(rt.service, rt.artifacts, rt.logger)
			r.Post("/navigate", navigationHandler.Navigate)
			r.Get("/locations", navigationHandler.ListLocations)
			r.Get("/map", navigationHandler.LatestMap)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	api.Success(w, http.StatusOK, api.HealthResponse{
		Status:  "healthy",
		Service: "campusnav",
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// readinessCheck handles readiness check requests. The service is ready
// once the campus graph is loaded.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	count := rt.service.LocationCount()
	if count == 0 {
		api.Error(w, http.StatusServiceUnavailable, "Campus graph is empty")
		return
	}

	api.Success(w, http.StatusOK, api.ReadyResponse{
		Status:    "ready",
		Locations: count,
	})
}
