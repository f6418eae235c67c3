package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/georegions-server/internal/api/http/handler"
	"github.com/dtroode/georegions-server/internal/api/http/middleware"
	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/metrics"
	"github.com/dtroode/georegions-server/internal/model"
)

// Router builds the HTTP routing tree of the service.
type Router struct {
	userService    handler.UserService
	regionService  handler.RegionService
	store          model.Pinger
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
	requestTimeout time.Duration
	logger         *logger.Logger
}

// New creates new Router instance. gatherer backs /metrics and may be nil to
// leave the endpoint out.
func New(
	userService handler.UserService,
	regionService handler.RegionService,
	store model.Pinger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	requestTimeout time.Duration,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService:    userService,
		regionService:  regionService,
		store:          store,
		metrics:        m,
		gatherer:       gatherer,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Register wires middleware and every route and returns the root handler.
func (r *Router) Register() http.Handler {
	mux := chi.NewRouter()

	mux.Use(chimiddleware.RequestID)
	mux.Use(middleware.NewLogging(r.logger).Handle)
	mux.Use(middleware.NewMetrics(r.metrics).Handle)
	mux.Use(chimiddleware.Recoverer)
	if r.requestTimeout > 0 {
		mux.Use(chimiddleware.Timeout(r.requestTimeout))
	}

	mux.Get("/health", handler.NewHealth(r.store, r.logger).Check)
	if r.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
	}

	r.registerUserRoutes(mux)
	r.registerRegionRoutes(mux)

	return mux
}

func (r *Router) registerUserRoutes(mux chi.Router) {
	users := handler.NewUser(r.userService, r.logger)

	mux.Route("/users", func(sub chi.Router) {
		sub.Post("/", users.Create)
		sub.Get("/", users.List)
		sub.Get("/{id}", users.Get)
		sub.Put("/{id}", users.Update)
		sub.Delete("/{id}", users.Delete)
	})
}

func (r *Router) registerRegionRoutes(mux chi.Router) {
	regions := handler.NewRegion(r.regionService, r.logger)

	mux.Route("/regions", func(sub chi.Router) {
		sub.Post("/", regions.Create)
		sub.Get("/", regions.List)
		sub.Get("/containing/point", regions.FindContainingPoint)
		sub.Get("/within/distance", regions.FindWithinDistance)
		sub.Get("/{id}", regions.Get)
		sub.Put("/{id}", regions.Update)
		sub.Delete("/{id}", regions.Delete)
	})
}
