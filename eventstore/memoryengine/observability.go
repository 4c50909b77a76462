package memoryengine

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
)

const (
	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricEventsQueried        = "eventstore_events_queried"
	metricEventsAppended       = "eventstore_events_appended"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	metricErrors               = "eventstore_errors_total"

	spanNameQuery  = "eventstore.query"
	spanNameAppend = "eventstore.append"

	spanAttrOperation   = "operation"
	spanAttrEventCount  = "event_count"
	spanAttrMaxSequence = "max_sequence"
	spanAttrExpectedSeq = "expected_sequence"
	spanAttrErrorType   = "error_type"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "conflict"

	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeCanceled            = "context_canceled"
	errorTypeTimeout             = "context_deadline_exceeded"
	errorTypeInvalidPayload      = "invalid_payload"
	errorTypeNoEvents            = "no_events"
	errorTypeOther               = "other"
)

// errorTypeOf classifies an error for metric labels and span attributes.
func errorTypeOf(err error) string {
	switch {
	case errors.Is(err, eventstore.ErrConcurrencyConflict):
		return errorTypeConcurrencyConflict
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeTimeout
	case errors.Is(err, ErrAppendingEventFailed):
		return errorTypeInvalidPayload
	case errors.Is(err, eventstore.ErrNoEventsToAppend):
		return errorTypeNoEvents
	default:
		return errorTypeOther
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// logOperation logs at info level, preferring the contextual logger.
func (es *EventStore) logOperation(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.InfoContext(ctx, logMsgOperation+msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Info(logMsgOperation+msg, args...)
	}
}

// logError logs at error level, preferring the contextual logger.
func (es *EventStore) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if es.contextualLogger != nil {
		es.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if es.logger != nil {
		es.logger.Error(msg, allArgs...)
	}
}

func (es *EventStore) recordDuration(ctx context.Context, metric string, duration time.Duration, operation, status string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, "status": status}

	if contextualCollector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	es.metricsCollector.RecordDuration(metric, duration, labels)
}

func (es *EventStore) recordValue(ctx context.Context, metric string, value float64, operation, status string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, "status": status}

	if contextualCollector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	es.metricsCollector.RecordValue(metric, value, labels)
}

func (es *EventStore) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	es.metricsCollector.IncrementCounter(metric, labels)
}

// recordError records the duration with error status plus an error counter.
func (es *EventStore) recordError(ctx context.Context, operation, errorType string, duration time.Duration) {
	es.recordDuration(ctx, durationMetricFor(operation), duration, operation, statusError)
	es.incrementCounter(ctx, metricErrors, map[string]string{
		spanAttrOperation: operation,
		"status":          statusError,
		spanAttrErrorType: errorType,
	})
}

func (es *EventStore) recordConcurrencyConflict(ctx context.Context) {
	es.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: operationAppend,
		"conflict_type":   "concurrency",
	})
}

func durationMetricFor(operation string) string {
	if operation == operationAppend {
		return metricAppendDuration
	}

	return metricQueryDuration
}

func (es *EventStore) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	if es.tracingCollector == nil {
		return ctx, nil
	}

	return es.tracingCollector.StartSpan(ctx, name, attrs)
}

func (es *EventStore) finishSpan(span eventstore.SpanContext, status string, attrs map[string]string) {
	if es.tracingCollector == nil || span == nil {
		return
	}

	es.tracingCollector.FinishSpan(span, status, attrs)
}
