// Package oteladapters implements the eventstore observability interfaces on top of OpenTelemetry.
//
// The adapters plug into memoryengine.EventStore and library.Library through their With* options:
//
//	store, _ := memoryengine.NewEventStore(
//		memoryengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("library")),
//		memoryengine.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		memoryengine.WithTracing(oteladapters.NewTracingCollector(tracer)),
//	)
package oteladapters
