package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecopickup/internal/http/handlers"
	obs "ecopickup/internal/http/middleware"
	"ecopickup/internal/http/middleware/ratelimit"
	"ecopickup/internal/logx"
)

// readTimeout bounds routes that only touch the database.
// Lifecycle routes are bounded by the orchestrator's own operation timeout.
const readTimeout = 5 * time.Second

// New constructs a chi-based http.Handler with base middleware and routes.
func New(
	logger logx.Logger,
	h *handlers.Handlers,
	pickups *handlers.PickupHandler,
	lifecycle *handlers.LifecycleHandler,
	rl *ratelimit.Middleware,
) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	if rl == nil {
		rl = ratelimit.New(logger, nil, nil)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.Observability(logger))
	r.Use(middleware.Recoverer)

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/pickups", func(r chi.Router) {
		r.Use(rl.Handler())

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(readTimeout))
			r.Get("/", pickups.List)
			r.Post("/", pickups.Create)
			r.Get("/{id}", pickups.GetByID)
		})

		r.Post("/{id}/assign", lifecycle.Assign)
		r.Post("/{id}/complete", lifecycle.Complete)
	})

	r.With(rl.Handler(), middleware.Timeout(readTimeout)).
		Get("/couriers/{wallet}/nonce", lifecycle.CourierNonce)

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
