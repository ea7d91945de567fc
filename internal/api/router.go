package api

import (
	"log/slog"
	"net/http"
	"time"

	_ "customers-api/docs"
	"customers-api/internal/api/handler"
	mw "customers-api/internal/api/middleware"
	"customers-api/internal/config"
	"customers-api/internal/domain/customer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SetupRouter wires every HTTP route. db may be nil when the configured
// driver has nothing to ping. The returned func releases background
// resources held by the middleware.
func SetupRouter(customerService customer.CustomerService, db handler.Pinger, cfg *config.Config, logger *slog.Logger) (*chi.Mux, func()) {
	router := chi.NewRouter()

	limiter := setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, logger)
	setupCustomerRoutes(router, cfg, customerService, logger)
	router.Get("/health", handler.NewHealthHandler(db, logger).Health)
	setupSwaggerEndpoint(router, logger)

	return router, limiter.Stop
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) *mw.RateLimiterMiddleware {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.Tracing())
	router.Use(mw.StructuredLogger(logger))
	router.Use(mw.ProblemRecoverer(logger))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.MetricsMiddleware())
	router.Use(cors.Handler(corsOptions(cfg.Server.CORS)))

	limiter := mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger)
	router.Use(limiter.Middleware)
	return limiter
}

func corsOptions(cfg config.CORSConfig) cors.Options {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupCustomerRoutes(router *chi.Mux, cfg *config.Config, svc customer.CustomerService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateCustomer)
		r.Get("/", h.GetAllCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeleteCustomer)
		})
	})
}
