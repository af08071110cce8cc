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
	"github.com/go-chi/render"

	"kpicli/internal/cache"
	"kpicli/internal/config"
	"kpicli/internal/exporter"
	"kpicli/internal/files"
	"kpicli/internal/infrastructure"
	"kpicli/internal/metrics"
	customMiddleware "kpicli/internal/middleware"
	"kpicli/internal/services"
	handlers "kpicli/internal/transport/http"
)

// Version is the application version, overridable at build time with
// -ldflags "-X kpicli/internal/app.Version=...".
var Version = "dev"

// Application represents the main application container
type Application struct {
	Config  *config.Config
	Paths   *config.Paths
	Router  *chi.Mux
	Server  *http.Server
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	Manager       *files.Manager
	ReportService *services.ReportService
	TrendsService *services.TrendsService
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	paths, err := config.NewPaths("", cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	app := &Application{
		Config:  cfg,
		Paths:   paths,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.Manager = files.NewManager(a.Paths)
	reportExporter := exporter.NewReportExporter(exporter.NewCSVWriter(a.Paths))

	a.ReportService = services.NewReportService(a.Manager, cache.New(), reportExporter, a.Metrics, a.Logger)
	a.TrendsService = services.NewTrendsService(a.Paths.DataDir, a.Metrics, a.Logger)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.HTTPMetrics(a.Metrics))
	r.Use(customMiddleware.StripSlashes)

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(Version)
		r.Get("/health", healthHandler.GetHealth)

		reportHandler := handlers.NewReportHandler(
			a.ReportService, a.Manager, a.Config.Server.MaxUploadBytes, a.Logger)
		r.Mount("/report", reportHandler.Routes())

		trendsHandler := handlers.NewTrendsHandler(a.TrendsService, a.Logger)
		r.Mount("/trends", trendsHandler.Routes())
	})

	// Outside the JSON group; Prometheus sets its own content type.
	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

// createServer creates the HTTP server
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

// Start starts the HTTP server. It returns once the listener is running;
// server errors cancel the passed context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) {
	a.Logger.InfoContext(ctx, "HTTP server listening",
		slog.String("addr", a.Server.Addr),
		slog.String("data_dir", a.Paths.DataDir),
		slog.String("uploads_dir", a.Paths.UploadsDir),
		slog.String("reports_dir", a.Paths.ReportsDir))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	a.Start(ctx, cancel)

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
