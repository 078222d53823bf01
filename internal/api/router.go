package api

import (
	"debt-ledger/internal/api/handler"
	mw "debt-ledger/internal/api/middleware"
	"debt-ledger/internal/config"
	"log/slog"
	"net/http"
	"time"

	_ "debt-ledger/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Ledger is everything the ledger routes read and mutate. *workspace.Workspace satisfies it.
type Ledger interface {
	handler.CustomerDirectory
	handler.DebtLedger
	handler.SummarySource
}

type Dependencies struct {
	Ledger      Ledger
	Sessions    handler.SessionManager
	Verifier    mw.TokenVerifier
	Composer    handler.MessageComposer
	Schema      func() (string, error)
	RateLimiter *mw.RateLimiterMiddleware
}

func SetupRouter(deps Dependencies, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, deps, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, deps, cfg, logger)
	setupCustomerRoutes(router, deps, cfg, logger)
	setupDebtRoutes(router, deps, cfg, logger)
	setupToolRoutes(router, deps, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, nil, logger)
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(limiter.Middleware)
	router.Use(mw.MetricsMiddleware())
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

const requestTimeout = 60 * time.Second

// withTimeout bounds a route group. Collection messages are left out: the text
// generator runs without a deadline and the composer falls back on failure.
func withTimeout() func(http.Handler) http.Handler {
	return middleware.Timeout(requestTimeout)
}

func requireSession(deps Dependencies, cfg *config.Config, logger *slog.Logger) func(http.Handler) http.Handler {
	return mw.AuthMiddleware(cfg.Server.Auth, deps.Verifier, deps.Sessions, logger)
}

func setupAuthRoutes(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewAuthHandler(deps.Sessions, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Use(withTimeout())
		r.Post("/signin", h.SignIn)
		r.Post("/signup", h.SignUp)
		r.Get("/session", h.CurrentSession)
		r.With(requireSession(deps, cfg, logger)).Post("/signout", h.SignOut)
	})
}

func setupCustomerRoutes(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewCustomerHandler(deps.Ledger, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Use(requireSession(deps, cfg, logger), withTimeout())
		r.Get("/", h.ListCustomers)
		r.Post("/", h.CreateCustomer)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeleteCustomer)
			r.Get("/whatsapp", h.WhatsAppLink)
		})
	})
}

func setupDebtRoutes(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewDebtHandler(deps.Ledger, deps.Composer, logger)

	router.Route("/debts", func(r chi.Router) {
		r.Use(requireSession(deps, cfg, logger))
		r.Post("/{debtID}/collection-message", h.CollectionMessage)

		r.Group(func(r chi.Router) {
			r.Use(withTimeout())
			r.Get("/", h.ListDebts)
			r.Post("/", h.CreateDebt)
			r.Get("/pending-customers", h.PendingCustomers)
			r.Get("/{debtID}", h.GetDebt)
			r.Put("/{debtID}", h.UpdateDebt)
			r.Delete("/{debtID}", h.DeleteDebt)
		})
	})
}

func setupToolRoutes(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	dashboardHandler := handler.NewDashboardHandler(deps.Ledger, logger)
	calculatorHandler := handler.NewCalculatorHandler(logger)
	schemaHandler := handler.NewSchemaHandler(deps.Schema, logger)

	router.With(requireSession(deps, cfg, logger), withTimeout()).Get("/dashboard", dashboardHandler.GetDashboard)
	router.With(requireSession(deps, cfg, logger), withTimeout()).Post("/calculator", calculatorHandler.Evaluate)
	router.With(withTimeout()).Get("/schema", schemaHandler.GetSchema)
}
