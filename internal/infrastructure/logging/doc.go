// Package logging provides structured logging for the locomotive
// inventory service.
//
// It wraps Go's standard log/slog package so every component logs in a
// consistent, machine-parsable form.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("starting service", "port", 8080)
//	logger.Error("request failed", "error", err)
//
// Never log secrets or API keys.
package logging
