package memoryengine

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
)

var ErrAppendingEventFailed = errors.New("appending the event failed")

const (
	logMsgQueryCompleted      = "query completed"
	logMsgEventsAppended      = "events appended"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgAppendFailed        = "append failed"
	logMsgOperation           = "eventstore operation: "
	logAttrError              = "error"
	logAttrEventType          = "event_type"
	logAttrEventCount         = "event_count"
	logAttrDurationMS         = "duration_ms"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
)

// entry is one journal record; fields holds the scalar top-level payload values used for predicate matching.
type entry struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
	fields         map[string]string
}

// EventStore is an in-memory, append-only event journal. The zero value is not usable, use NewEventStore.
type EventStore struct {
	mu      sync.RWMutex
	entries []entry

	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

// NewEventStore creates an empty EventStore with optional configuration.
func NewEventStore(options ...Option) (*EventStore, error) {
	es := &EventStore{}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query returns all events matching the filter in append order,
// together with the max sequence number of this "dynamic event stream" (0 if it is empty).
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	ctx, span := es.startSpan(ctx, spanNameQuery, map[string]string{spanAttrOperation: operationQuery})
	start := time.Now()

	if err := ctx.Err(); err != nil {
		es.recordError(ctx, operationQuery, errorTypeOf(err), time.Since(start))
		es.finishSpan(span, statusError, map[string]string{spanAttrErrorType: errorTypeOf(err)})

		return nil, 0, err
	}

	es.mu.RLock()
	events, maxSequenceNumber := es.selectStream(filter)
	es.mu.RUnlock()

	duration := time.Since(start)
	es.recordDuration(ctx, metricQueryDuration, duration, operationQuery, statusSuccess)
	es.recordValue(ctx, metricEventsQueried, float64(len(events)), operationQuery, statusSuccess)
	es.logOperation(ctx, logMsgQueryCompleted, logAttrEventCount, len(events), logAttrDurationMS, toMilliseconds(duration))
	es.finishSpan(span, statusSuccess, map[string]string{
		spanAttrEventCount:  strconv.Itoa(len(events)),
		spanAttrMaxSequence: strconv.FormatUint(uint64(maxSequenceNumber), 10),
	})

	return events, maxSequenceNumber, nil
}

// Append appends one or multiple events if the "dynamic event stream" selected by the filter
// has not changed since it was queried with expectedMaxSequenceNumber.
//
// All events are appended or none.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvents ...eventstore.StorableEvent,
) error {

	ctx, span := es.startSpan(ctx, spanNameAppend, map[string]string{
		spanAttrOperation:   operationAppend,
		spanAttrEventCount:  strconv.Itoa(len(storableEvents)),
		spanAttrExpectedSeq: strconv.FormatUint(uint64(expectedMaxSequenceNumber), 10),
	})
	start := time.Now()

	fail := func(err error) error {
		es.recordError(ctx, operationAppend, errorTypeOf(err), time.Since(start))
		es.logError(ctx, logMsgAppendFailed, err)
		es.finishSpan(span, statusError, map[string]string{spanAttrErrorType: errorTypeOf(err)})

		return err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	if len(storableEvents) == 0 {
		return fail(eventstore.ErrNoEventsToAppend)
	}

	newEntries := make([]entry, 0, len(storableEvents))
	for _, event := range storableEvents {
		fields, err := payloadFields(event.PayloadJSON)
		if err != nil {
			return fail(errors.Join(ErrAppendingEventFailed, err))
		}

		newEntries = append(newEntries, entry{event: event, fields: fields})
	}

	es.mu.Lock()
	_, actualMaxSequenceNumber := es.selectStream(filter)
	if actualMaxSequenceNumber != expectedMaxSequenceNumber {
		es.mu.Unlock()
		es.recordConcurrencyConflict(ctx)
		es.logOperation(
			ctx,
			logMsgConcurrencyConflict,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
			logAttrActualSequence, actualMaxSequenceNumber,
		)
		es.finishSpan(span, statusConflict, map[string]string{spanAttrErrorType: errorTypeConcurrencyConflict})

		return eventstore.ErrConcurrencyConflict
	}

	for i := range newEntries {
		newEntries[i].sequenceNumber = eventstore.MaxSequenceNumberUint(len(es.entries) + 1)
		es.entries = append(es.entries, newEntries[i])
	}
	es.mu.Unlock()

	duration := time.Since(start)
	es.recordDuration(ctx, metricAppendDuration, duration, operationAppend, statusSuccess)
	es.recordValue(ctx, metricEventsAppended, float64(len(newEntries)), operationAppend, statusSuccess)
	es.logOperation(
		ctx,
		logMsgEventsAppended,
		logAttrEventType, storableEvents[0].EventType,
		logAttrEventCount, len(newEntries),
		logAttrDurationMS, toMilliseconds(duration),
	)
	es.finishSpan(span, statusSuccess, map[string]string{spanAttrEventCount: strconv.Itoa(len(newEntries))})

	return nil
}

// Len returns the total number of events in the journal.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.entries)
}

// selectStream must be called while holding at least the read lock.
func (es *EventStore) selectStream(filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint) {
	var maxSequenceNumber eventstore.MaxSequenceNumberUint
	events := make(eventstore.StorableEvents, 0)

	for _, e := range es.entries {
		if !filter.Matches(e.event.EventType, e.fields) {
			continue
		}

		events = append(events, e.event)
		maxSequenceNumber = e.sequenceNumber
	}

	return events, maxSequenceNumber
}

// payloadFields extracts the scalar top-level values of a JSON object payload as strings.
func payloadFields(payloadJSON []byte) (map[string]string, error) {
	raw := make(map[string]any)
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &raw); err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(raw))
	for key, val := range raw {
		switch v := val.(type) {
		case string:
			fields[key] = v
		case bool:
			fields[key] = strconv.FormatBool(v)
		case float64:
			fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		// null, nested objects, and arrays never match a predicate
	}

	return fields, nil
}
