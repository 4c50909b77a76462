package memoryengine

import (
	"errors"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
)

var ErrNilLogger = errors.New("logger must not be nil")
var ErrNilMetricsCollector = errors.New("metrics collector must not be nil")
var ErrNilTracingCollector = errors.New("tracing collector must not be nil")

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithLogger sets the logger for the EventStore.
//
// Info level: completed operations with event counts and timings, concurrency conflicts
// Error level: failed appends.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		if logger == nil {
			return ErrNilLogger
		}

		es.logger = logger

		return nil
	}
}

// WithContextualLogger sets the contextual logger, which takes precedence over the plain logger.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		if logger == nil {
			return ErrNilLogger
		}

		es.contextualLogger = logger

		return nil
	}
}

// WithMetrics sets the metrics collector for query/append durations, event counts, and conflicts.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		if collector == nil {
			return ErrNilMetricsCollector
		}

		es.metricsCollector = collector

		return nil
	}
}

// WithTracing sets the tracing collector; each Query and Append runs in its own span.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		if collector == nil {
			return ErrNilTracingCollector
		}

		es.tracingCollector = collector

		return nil
	}
}
