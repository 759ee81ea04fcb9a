package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mherran/stockroute-backend/api/controllers"
	"github.com/mherran/stockroute-backend/api/middleware"
	"github.com/mherran/stockroute-backend/internal/orders"
	"github.com/mherran/stockroute-backend/internal/quotes"
	"github.com/mherran/stockroute-backend/pkg/config"
	"github.com/mherran/stockroute-backend/pkg/db"
	"github.com/mherran/stockroute-backend/pkg/logger"
	"github.com/mherran/stockroute-backend/pkg/metrics"
	"github.com/mherran/stockroute-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	flow *metrics.OrderFlowMetrics,
	quoteService quotes.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	var idemStore redis.IdempotencyStore
	if redisClient != nil {
		idemStore = redisClient
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/quotes", controllers.BuildQuote(quoteService, flow, logg))
		// Commit is the only endpoint guarded against duplicate retries.
		r.With(middleware.Idempotency(idemStore, logg, cfg.Idempotency.CommitTTL)).
			Post("/orders", controllers.CommitOrder(orderService, flow, logg))
		r.Get("/orders/{orderId}", controllers.GetOrder(orderService, logg))
	})

	return r
}
