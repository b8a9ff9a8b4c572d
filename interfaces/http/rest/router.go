package rest

import (
	"net/http"
	"time"

	"memoboard/application/commands/bus"
	querybus "memoboard/application/queries/bus"
	"memoboard/application/services"
	"memoboard/infrastructure/di"
	"memoboard/interfaces/http/rest/handlers"
	"memoboard/interfaces/http/rest/middleware"
	"memoboard/pkg/common"
	"memoboard/pkg/ratelimit"
	pkgerrors "memoboard/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// ReadinessProbe reports whether the working set has been loaded
type ReadinessProbe func() bool

// Options carries the collaborators the router hands to its handlers
type Options struct {
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
	Categories    handlers.CategoryResolver
	Notifications handlers.NotificationSource
	ImageIntake   *services.ImageIntake
	ErrorHandler  *pkgerrors.ErrorHandler
	MaxImageBytes int64
	Ready         ReadinessProbe

	// RateLimiter throttles write requests per client; nil disables it
	RateLimiter ratelimit.Limiter

	EnableCORS  bool
	CORSOrigins []string
}

// Router creates and configures the HTTP router
type Router struct {
	opts   Options
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(opts Options, logger *zap.Logger) *Router {
	if opts.Ready == nil {
		opts.Ready = func() bool { return true }
	}
	return &Router{
		opts:   opts,
		logger: logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(chimiddleware.Timeout(60 * time.Second))

	if rt.opts.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		writes := chi.Chain()
		if rt.opts.RateLimiter != nil {
			writes = chi.Chain(middleware.RateLimit(rt.opts.RateLimiter, rt.opts.ErrorHandler, rt.logger))
		}

		memoHandler := handlers.NewMemoHandler(
			rt.opts.CommandBus,
			rt.opts.QueryBus,
			rt.opts.Categories,
			rt.opts.ErrorHandler,
			rt.opts.MaxImageBytes,
			rt.logger,
		)
		r.Route("/memos", func(r chi.Router) {
			r.Get("/", memoHandler.ListMemos)
			r.With(writes...).Post("/", memoHandler.CreateMemo)
			r.With(writes...).Post("/reload", memoHandler.ReloadMemos)
			r.With(writes...).Delete("/{memoID}", memoHandler.DeleteMemo)
		})

		viewHandler := handlers.NewViewHandler(rt.opts.CommandBus, rt.opts.QueryBus, rt.opts.ErrorHandler, rt.logger)
		r.Get("/view", viewHandler.GetView)
		r.Put("/view", viewHandler.UpdateView)

		r.Get("/categories", handlers.NewCategoryHandler(rt.opts.QueryBus, rt.opts.ErrorHandler).ListCategories)

		if rt.opts.ImageIntake != nil {
			r.With(writes...).Post("/images", handlers.NewImageHandler(rt.opts.ImageIntake, rt.opts.ErrorHandler, rt.logger).UploadImage)
		}

		if rt.opts.Notifications != nil {
			r.Get("/notification", handlers.NewNotificationHandler(rt.opts.Notifications).GetNotification)
		}
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck reports ready once the initial load has completed
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if !rt.opts.Ready() {
		common.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// OptionsFromContainer collects router options from a wired container
func OptionsFromContainer(c *di.Container, ready ReadinessProbe) Options {
	var limiter ratelimit.Limiter
	if c.Config.RateLimitPerMinute > 0 {
		limiter = ratelimit.PerMinute(c.Config.RateLimitPerMinute)
	}
	return Options{
		CommandBus:    c.CommandBus,
		QueryBus:      c.QueryBus,
		Categories:    c.Engine,
		Notifications: c.Notifications,
		ImageIntake:   c.ImageIntake,
		ErrorHandler:  c.ErrorHandler,
		MaxImageBytes: c.DomainConfig.MaxImageBytes,
		Ready:         ready,
		RateLimiter:   limiter,
		EnableCORS:    c.Config.EnableCORS,
		CORSOrigins:   c.Config.CORSOrigins,
	}
}
