// Locoreg - locomotive inventory service
//
// This is the main entry point for the locomotive inventory service.
// It serves a small records API over HTTP, protected by two static
// shared-secret tiers (read-only and admin), and optionally hosts the
// static browser UI that consumes the same API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spoorwerk/locoreg/internal/api"
	"github.com/spoorwerk/locoreg/internal/auth"
	"github.com/spoorwerk/locoreg/internal/infrastructure/config"
	"github.com/spoorwerk/locoreg/internal/infrastructure/logging"
	"github.com/spoorwerk/locoreg/internal/inventory"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting locoreg",
		"version", version,
		"commit", commit,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Initialise record repository
	repo := inventory.NewRepository()
	repo.SetLogger(log.With("component", "inventory"))

	// Initialise authorisation gate
	gate := auth.NewGate(cfg.Security.ReadKey, cfg.Security.AdminKey)

	// Start API server
	server, err := api.New(api.Deps{
		Config:  cfg.API,
		Web:     cfg.Web,
		Logger:  log.With("component", "api"),
		Repo:    repo,
		Gate:    gate,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses LOCOREG_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("LOCOREG_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
