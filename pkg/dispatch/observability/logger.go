// Package observability provides logging, metrics, and tracing for dispatch
// registries.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds registry context to a logger.
// Returns a new logger with registry and registry_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "codecs", id)
//	enriched.Info("ready") // includes registry, registry_id
func EnrichLogger(logger *slog.Logger, registryName, registryID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("registry", registryName),
		slog.String("registry_id", registryID),
	)
}

// LogRegistered logs a successful registration.
func LogRegistered(logger *slog.Logger, module, name, signature, registrationID string) {
	if logger == nil {
		return
	}
	logger.Debug("implementation registered",
		slog.String("module", module),
		slog.String("function", name),
		slog.String("signature", signature),
		slog.String("registration_id", registrationID),
	)
}

// LogConflict logs a rejected registration.
func LogConflict(logger *slog.Logger, module, name, signature, existingID string) {
	if logger == nil {
		return
	}
	logger.Warn("registration conflict",
		slog.String("module", module),
		slog.String("function", name),
		slog.String("signature", signature),
		slog.String("existing_id", existingID),
	)
}

// LogFallback logs a lookup that was served by the fallback implementation.
func LogFallback(logger *slog.Logger, module, name, signature string) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch fell back to default",
		slog.String("module", module),
		slog.String("function", name),
		slog.String("signature", signature),
	)
}

// LogMiss logs a lookup with no matching implementation and no fallback.
func LogMiss(logger *slog.Logger, module, name, signature string) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch miss",
		slog.String("module", module),
		slog.String("function", name),
		slog.String("signature", signature),
	)
}

// LogCatalogError logs a catalog failure (non-fatal).
func LogCatalogError(logger *slog.Logger, name, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("catalog write failed",
		slog.String("function", name),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// LogCatalogReplaced logs a catalog record taken over from another registry
// instance with the same name.
func LogCatalogReplaced(logger *slog.Logger, module, name, signature, previousRegistryID string) {
	if logger == nil {
		return
	}
	logger.Warn("catalog record replaced",
		slog.String("module", module),
		slog.String("function", name),
		slog.String("signature", signature),
		slog.String("previous_registry_id", previousRegistryID),
	)
}

// LogInvokeError logs a failed invocation.
func LogInvokeError(logger *slog.Logger, name string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("invocation failed",
		slog.String("function", name),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
