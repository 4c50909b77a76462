// Package eventstore provides the storage-agnostic building blocks of the lending journal:
// the StorableEvent DTO, the Filter used to select a "dynamic event stream",
// and the dependency-free observability interfaces shared by all engines.
//
// The library façade records one event per state change (book added, book lent, ...).
// Engines such as memoryengine keep those events in append order and answer filtered
// queries, returning the max sequence number of the selected stream so callers can
// append with optimistic concurrency.
//
// Common usage pattern:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.BookLentToUserEventType,
//			core.BookReturnedByUserEventType).
//		AndAnyPredicateOf(eventstore.P("BookISBN", isbn)).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	err = store.Append(ctx, filter, maxSeq, newEvent)
package eventstore
