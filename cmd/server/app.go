package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/phrazzld/campus-api/internal/config"
	"github.com/phrazzld/campus-api/internal/directory"
	"github.com/phrazzld/campus-api/internal/events"
	"github.com/phrazzld/campus-api/internal/platform/metrics"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	directory    *directory.Directory
	eventEmitter *events.InMemoryEventEmitter
	metrics      *metrics.Metrics
}

// newApplication creates a new application instance with all dependencies initialized.
// The directory is created empty; its events feed the audit log and, when
// enabled, the Prometheus counters.
func newApplication(cfg *config.Config, logger *slog.Logger) *application {
	app := &application{
		config: cfg,
		logger: logger,
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewAuditLogHandler(logger))

	if cfg.Metrics.Enabled {
		app.metrics = metrics.New()
		app.eventEmitter.RegisterHandler(app.metrics)
	}

	app.directory = directory.New(app.eventEmitter, logger)

	logger.Info("Application initialized successfully")
	return app
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	addr := fmt.Sprintf(":%d", app.config.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return app.serve(ctx, ln, router)
}
