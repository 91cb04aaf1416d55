// Package main implements the entry point for the Campus API server, an
// in-memory university directory of students, teachers and courses.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// main is the entry point for the campus-api server.
// It loads configuration, sets up logging, wires the directory and HTTP
// handlers, and serves until SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("campus-api: %v", err)
	}
}

// run performs the core initialization and blocks until ctx is cancelled
// or the server fails.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app := newApplication(cfg, logger)
	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
