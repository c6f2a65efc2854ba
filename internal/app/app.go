package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"branchpulse/internal/config"
	"branchpulse/internal/errors"
	"branchpulse/internal/infrastructure"
	customMiddleware "branchpulse/internal/middleware"
	"branchpulse/internal/services"
	handlers "branchpulse/internal/transport/http"
)

// Application metadata set at build time via ldflags.
var (
	Version   = "dev"
	BuildTime = ""
)

// AppName identifies the service in logs.
const AppName = "branchpulse"

// Application wires configuration, services and the HTTP server together.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Router  chi.Router
	Server  *http.Server
	Metrics *infrastructure.Metrics

	Services *ServiceContainer
}

// ServiceContainer holds the business services.
type ServiceContainer struct {
	Dataset   *services.DatasetService
	Analytics *services.AnalyticsService
	Health    *services.HealthService
}

// NewApplication builds a fully wired application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: infrastructure.NewMetrics(),
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	app.setupRouter()
	app.createServer()
	return app, nil
}

// initializeServices constructs the service container.
func (a *Application) initializeServices() error {
	areas := config.DefaultStateAreas()
	if path := a.Config.Paths.AreasFile; path != "" {
		loaded, err := config.LoadStateAreas(path)
		if err != nil {
			return fmt.Errorf("failed to load state areas: %w", err)
		}
		areas = loaded
	}

	datasetService := services.NewDatasetService(a.Config, a.Logger)

	a.Services = &ServiceContainer{
		Dataset:   datasetService,
		Analytics: services.NewAnalyticsService(datasetService, a.Config, areas, a.Logger),
		Health:    services.NewHealthService(Version, BuildTime, a.Config, datasetService, a.Logger),
	}
	return nil
}

// setupRouter builds the middleware chain and mounts the API routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Middleware ordering: RequestID -> RealIP -> Metrics -> Logger ->
	// Recoverer -> SecurityHeaders -> CORS -> RateLimiter.
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(a.Metrics.Middleware)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			ExposedHeaders: []string{"X-Request-ID"},
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	a.setupAPIRoutes(r)

	// Prometheus metrics endpoint
	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := errors.NewErrorHandler(a.Logger, false)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		dataHandler := handlers.NewDataHandler(a.Services.Dataset, a.Logger, errorHandler)
		r.Mount("/data", dataHandler.Routes())

		analyticsHandler := handlers.NewAnalyticsHandler(a.Services.Analytics, a.Logger, errorHandler)
		r.Mount("/analytics", analyticsHandler.Routes())
	})
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run starts the HTTP server and blocks until an interrupt signal or a
// server error, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Logger.InfoContext(ctx, "starting application",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("data_dir", a.Config.GetDataDir()),
		slog.String("reports_dir", a.Config.GetReportsDir()))

	// Warm the dataset cache up front so the first request is fast. A
	// missing source file is not fatal; the API reports it per request.
	if err := a.Services.Dataset.Load(ctx); err != nil {
		a.Logger.WarnContext(ctx, "dataset warm-up failed",
			slog.String("error", err.Error()))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return g.Wait()
}

// Stop gracefully stops the HTTP server.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Error("failed to close log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}
