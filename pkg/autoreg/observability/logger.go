// Package observability provides structured logging, metrics, and
// distributed tracing for the autoreg registry.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Metrics and tracing are opt-in and have no-op implementations when
// disabled.
package observability

import "log/slog"

// Batch phase names used in spans and log lines.
const (
	PhaseCreate = "create"
	PhaseInit   = "init"
)

// LogRegistered logs a successful registration.
func LogRegistered(logger *slog.Logger, key string, priority int) {
	if logger == nil {
		return
	}
	logger.Info("registered",
		slog.String("key", key),
		slog.Int("priority", priority),
	)
}

// LogOverwrite warns that a registration replaced an existing entry.
func LogOverwrite(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Warn("overwriting registration",
		slog.String("key", key),
	)
}

// LogRejected warns that a registration was refused outright.
func LogRejected(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("registration rejected",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogDisabled notes that a registration was skipped by configuration.
func LogDisabled(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Info("registration disabled by config",
		slog.String("key", key),
	)
}

// LogMissing warns about a lookup for an unregistered key.
func LogMissing(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Warn("no registration for key",
		slog.String("key", key),
	)
}

// LogCreateFailed logs a creator failure. The entry stays un-built and
// is retried on the next lookup.
func LogCreateFailed(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Error("create failed",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogInitFailed logs an initializer failure. The built instance is kept.
func LogInitFailed(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Error("init failed",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogTypeMismatch warns that a lookup's static type disagrees with the
// stored instance.
func LogTypeMismatch(logger *slog.Logger, key string, have string) {
	if logger == nil {
		return
	}
	logger.Warn("instance type mismatch",
		slog.String("key", key),
		slog.String("have", have),
	)
}

// LogBatchStart logs the start of a batch initialization pass.
// Scope names the priority slice, e.g. "0-10".
func LogBatchStart(logger *slog.Logger, scope string, entries int) {
	if logger == nil {
		return
	}
	logger.Info("batch init starting",
		slog.String("priorities", scope),
		slog.Int("entries", entries),
	)
}

// LogBatchComplete logs the end of a batch initialization pass.
func LogBatchComplete(logger *slog.Logger, scope string, entries, instances int) {
	if logger == nil {
		return
	}
	logger.Info("batch init completed",
		slog.String("priorities", scope),
		slog.Int("entries", entries),
		slog.Int("instances", instances),
	)
}

// LogCleared logs a registry teardown.
func LogCleared(logger *slog.Logger, entries int) {
	if logger == nil {
		return
	}
	logger.Info("registry cleared",
		slog.Int("entries", entries),
	)
}
