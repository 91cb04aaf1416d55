package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/campus-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfig reports the effective configuration once logging is set up.
func logConfig(log *slog.Logger, cfg *config.Config) {
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"metrics_enabled", cfg.Metrics.Enabled)
	log.Debug("Server timeouts",
		"shutdown_timeout_seconds", cfg.Server.ShutdownTimeoutSeconds,
		"read_header_timeout_seconds", cfg.Server.ReadHeaderTimeoutSeconds)
}
