// Package memoryengine provides an in-memory implementation of the lending journal.
//
// Events are kept in append order, each with a sequence number starting at 1. Query returns
// all events matching an eventstore.Filter together with the highest sequence number of that
// "dynamic event stream". Append only succeeds if the stream's max sequence number still equals
// the expected one, otherwise it fails with eventstore.ErrConcurrencyConflict.
//
// Nothing is persisted: the journal lives as long as the EventStore value.
//
// Observability is opt-in via functional options:
//
//	store, err := memoryengine.NewEventStore(
//		memoryengine.WithLogger(slog.Default()),
//		memoryengine.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		memoryengine.WithTracing(oteladapters.NewTracingCollector(tracer)),
//	)
package memoryengine
