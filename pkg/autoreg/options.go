package autoreg

import (
	"log/slog"

	"github.com/randalmurphal/autoreg/pkg/autoreg/config"
	"github.com/randalmurphal/autoreg/pkg/autoreg/observability"
)

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger sets the logger used for registry diagnostics.
// A nil logger silences them.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Default: no-op.
//
// Example:
//
//	r := autoreg.New(autoreg.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithSpans sets the trace span manager. Default: no-op.
func WithSpans(s observability.SpanManager) Option {
	return func(r *Registry) {
		if s != nil {
			r.spans = s
		}
	}
}

// WithConfig applies a startup configuration: per-key priority overrides,
// disabled keys, and the default priority for registrations that do not
// specify one. Overrides are consulted at registration time and then
// clamped like any other priority.
func WithConfig(cfg config.Config) Option {
	return func(r *Registry) {
		r.defaultPriority = clampPriority(cfg.DefaultPriority)
		if len(cfg.Priorities) > 0 {
			r.priorityOverrides = make(map[string]int, len(cfg.Priorities))
			for k, p := range cfg.Priorities {
				r.priorityOverrides[k] = p
			}
		}
		if len(cfg.Disabled) > 0 {
			r.disabled = make(map[string]struct{}, len(cfg.Disabled))
			for _, k := range cfg.Disabled {
				r.disabled[k] = struct{}{}
			}
		}
	}
}
