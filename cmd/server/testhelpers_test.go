package main

import (
	"testing"

	"github.com/phrazzld/campus-api/internal/config"
	"github.com/phrazzld/campus-api/internal/platform/logger"
)

// testConfig returns a valid configuration with metrics enabled.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                     0,
			LogLevel:                 "debug",
			ShutdownTimeoutSeconds:   2,
			ReadHeaderTimeoutSeconds: 1,
		},
		Metrics: config.MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// newTestApplication builds an application logging to a buffer.
func newTestApplication(t *testing.T, cfg *config.Config) (*application, *logger.TestLogBuffer) {
	t.Helper()
	buf, log := logger.NewTestLogger(t)
	return newApplication(cfg, log), buf
}
