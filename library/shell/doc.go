// Package shell translates between the library's domain events and the storable events
// of the event journal.
//
// It serializes domain events and their metadata with jsoniter, maps journal records back
// to domain events, and records events with optimistic concurrency and retries.
// In Hexagonal Architecture terminology this is the 'infrastructure' layer.
package shell
