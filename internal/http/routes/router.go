package routes

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tikkun/tikkun-api/internal/config"
	"github.com/tikkun/tikkun-api/internal/http/handlers"
	"github.com/tikkun/tikkun-api/internal/http/mw"
	"github.com/tikkun/tikkun-api/internal/metrics"
	"github.com/tikkun/tikkun-api/internal/shutdown"
)

// Deps are the components the router serves.
type Deps struct {
	Handlers *handlers.Handlers
	Metrics  *metrics.Metrics

	// Static serves the client page; nil disables it.
	Static http.Handler

	// Idle tracks request activity for scale-to-zero; optional.
	Idle *shutdown.IdleMonitor
}

// NewRouter builds the complete HTTP handler.
func NewRouter(cfg *config.Config, d Deps) (chi.Router, huma.API) {
	handlers.InstallErrorFormat()

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.LogContext)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(mw.APIVersion())
	if d.Idle != nil {
		router.Use(d.Idle.Middleware)
	}

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		ExposedHeaders: []string{"X-Request-ID", "X-API-Version"},
		MaxAge:         300,
	}))

	// Request size limit
	router.Use(middleware.RequestSize(cfg.MaxBodyBytes))

	api := humachi.New(router, NewHumaConfig())
	Register(api, d.Handlers, cfg.MaxBodyBytes)

	if d.Metrics != nil {
		router.Handle("/metrics", d.Metrics.Handler())
	}

	if d.Static != nil {
		router.Handle("/*", d.Static)
	}

	return router, api
}
