package memoryengine_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/AntonStoeckl/library-lending-go/eventstore"
	. "github.com/AntonStoeckl/library-lending-go/eventstore/memoryengine"
)

const (
	bookAdded = "BookAddedToCatalog"
	bookLent  = "BookLentToUser"
	userAdded = "UserRegistered"
)

var fakeClock = time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC)

func givenEventStore(t *testing.T, options ...Option) *EventStore {
	es, err := NewEventStore(options...)
	require.NoError(t, err, "creating the event store failed")

	return es
}

func storable(t *testing.T, eventType string, payload string) StorableEvent {
	event, err := BuildStorableEventWithEmptyMetadata(eventType, fakeClock, []byte(payload))
	require.NoError(t, err, "error in arranging test data")

	return event
}

func bookAddedEvent(t *testing.T, isbn string) StorableEvent {
	return storable(t, bookAdded, fmt.Sprintf(`{"BookISBN":%q,"Title":"Clean Code"}`, isbn))
}

func bookLentEvent(t *testing.T, isbn, userID string) StorableEvent {
	return storable(t, bookLent, fmt.Sprintf(`{"BookISBN":%q,"UserID":%q}`, isbn, userID))
}

func filterForBook(isbn string) Filter {
	return BuildEventFilter().
		Matching().
		AnyPredicateOf(P("BookISBN", isbn)).
		Finalize()
}

func givenEventsWereAppended(t *testing.T, es *EventStore, filter Filter, events ...StorableEvent) {
	_, maxSequenceNumber, err := es.Query(context.Background(), filter)
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, es.Append(context.Background(), filter, maxSequenceNumber, events...), "error in arranging test data")
}

func Test_Append_When_NoEvent_MatchesTheQuery_BeforeAppend(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	givenEventsWereAppended(t, es, filterForBook("isbn-other"), bookAddedEvent(t, "isbn-other"))
	filter := filterForBook("isbn-1")

	// act
	err := es.Append(context.Background(), filter, 0, bookAddedEvent(t, "isbn-1"))

	// assert
	assert.NoError(t, err, "error in appending the event")
	assert.Equal(t, 2, es.Len())
}

func Test_Append_When_SomeEvents_MatchTheQuery_BeforeAppend(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	filter := filterForBook("isbn-1")
	givenEventsWereAppended(t, es, filter, bookAddedEvent(t, "isbn-1"))
	_, maxSequenceNumber, err := es.Query(context.Background(), filter)
	require.NoError(t, err)

	// act
	err = es.Append(context.Background(), filter, maxSequenceNumber, bookLentEvent(t, "isbn-1", "U001"))

	// assert
	assert.NoError(t, err, "error in appending the event")
	assert.Equal(t, MaxSequenceNumberUint(1), maxSequenceNumber)
}

func Test_Append_When_A_ConcurrencyConflict_ShouldHappen(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	filter := filterForBook("isbn-1")
	givenEventsWereAppended(t, es, filter, bookAddedEvent(t, "isbn-1"))
	_, maxSequenceNumberBeforeAppend, err := es.Query(context.Background(), filter)
	require.NoError(t, err)
	givenEventsWereAppended(t, es, filter, bookLentEvent(t, "isbn-1", "U001")) // concurrent append

	// act
	err = es.Append(context.Background(), filter, maxSequenceNumberBeforeAppend, bookLentEvent(t, "isbn-1", "U002"))

	// assert
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
	assert.Equal(t, 2, es.Len(), "a conflicting append must not change the journal")
}

func Test_Append_When_AnUnrelatedEvent_WasAppended_InBetween(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	filter := filterForBook("isbn-1")
	givenEventsWereAppended(t, es, filter, bookAddedEvent(t, "isbn-1"))
	_, maxSequenceNumberBeforeAppend, err := es.Query(context.Background(), filter)
	require.NoError(t, err)
	givenEventsWereAppended(t, es, filterForBook("isbn-2"), bookAddedEvent(t, "isbn-2"))

	// act
	err = es.Append(context.Background(), filter, maxSequenceNumberBeforeAppend, bookLentEvent(t, "isbn-1", "U001"))

	// assert
	assert.NoError(t, err, "events outside of the stream must not cause a conflict")
}

func Test_Append_MultipleEvents_AllOrNone(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	filter := filterForBook("isbn-1")
	invalidPayload := StorableEvent{EventType: bookLent, OccurredAt: fakeClock, PayloadJSON: []byte(`["not","an","object"]`)}

	// act
	err := es.Append(context.Background(), filter, 0, bookAddedEvent(t, "isbn-1"), invalidPayload)

	// assert
	assert.ErrorIs(t, err, ErrAppendingEventFailed)
	assert.Equal(t, 0, es.Len())
}

func Test_Append_Without_Events(t *testing.T) {
	// arrange
	es := givenEventStore(t)

	// act
	err := es.Append(context.Background(), BuildEventFilter().MatchingAnyEvent(), 0)

	// assert
	assert.ErrorIs(t, err, ErrNoEventsToAppend)
}

func Test_Append_When_Context_IsCanceled(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	err := es.Append(ctx, filterForBook("isbn-1"), 0, bookAddedEvent(t, "isbn-1"))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, es.Len())
}

func Test_Query_ReturnsMatchingEvents_InAppendOrder(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	givenEventsWereAppended(t, es, filterForBook("isbn-1"), bookAddedEvent(t, "isbn-1"))
	givenEventsWereAppended(t, es, filterForBook("isbn-2"), bookAddedEvent(t, "isbn-2"))
	givenEventsWereAppended(t, es, filterForBook("isbn-1"), bookLentEvent(t, "isbn-1", "U001"))

	// act
	events, maxSequenceNumber, err := es.Query(context.Background(), filterForBook("isbn-1"))

	// assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, bookAdded, events[0].EventType)
	assert.Equal(t, bookLent, events[1].EventType)
	assert.Equal(t, MaxSequenceNumberUint(3), maxSequenceNumber)
}

func Test_Query_WithEmptyFilter_ReturnsAllEvents(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	givenEventsWereAppended(t, es, filterForBook("isbn-1"), bookAddedEvent(t, "isbn-1"))
	givenEventsWereAppended(t, es, filterForBook("isbn-2"), bookAddedEvent(t, "isbn-2"))

	// act
	events, maxSequenceNumber, err := es.Query(context.Background(), BuildEventFilter().MatchingAnyEvent())

	// assert
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, MaxSequenceNumberUint(2), maxSequenceNumber)
}

func Test_Query_WithEventTypesAndAllPredicates(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	givenEventsWereAppended(t, es, filterForBook("isbn-1"),
		bookAddedEvent(t, "isbn-1"),
		bookLentEvent(t, "isbn-1", "U001"),
		bookLentEvent(t, "isbn-1", "U002"),
		storable(t, userAdded, `{"UserID":"U001"}`),
	)
	filter := BuildEventFilter().
		Matching().
		AnyEventTypeOf(bookLent).
		AndAllPredicatesOf(P("BookISBN", "isbn-1"), P("UserID", "U001")).
		Finalize()

	// act
	events, maxSequenceNumber, err := es.Query(context.Background(), filter)

	// assert
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.JSONEq(t, `{"BookISBN":"isbn-1","UserID":"U001"}`, string(events[0].PayloadJSON))
	assert.Equal(t, MaxSequenceNumberUint(2), maxSequenceNumber)
}

func Test_Query_When_NothingMatches(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	givenEventsWereAppended(t, es, filterForBook("isbn-1"), bookAddedEvent(t, "isbn-1"))

	// act
	events, maxSequenceNumber, err := es.Query(context.Background(), filterForBook("isbn-unknown"))

	// assert
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, MaxSequenceNumberUint(0), maxSequenceNumber)
}

func Test_Query_When_Context_IsCanceled(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, _, err := es.Query(ctx, BuildEventFilter().MatchingAnyEvent())

	// assert
	assert.True(t, errors.Is(err, context.Canceled))
}

func Test_Append_Concurrently_OnlyOneWriterWins(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	filter := filterForBook("isbn-1")
	givenEventsWereAppended(t, es, filter, bookAddedEvent(t, "isbn-1"))
	_, maxSequenceNumber, err := es.Query(context.Background(), filter)
	require.NoError(t, err)

	const writers = 10
	events := make([]StorableEvent, writers)
	for i := range events {
		events[i] = bookLentEvent(t, "isbn-1", fmt.Sprintf("U%03d", i))
	}
	var wg sync.WaitGroup
	results := make(chan error, writers)

	// act
	for _, event := range events {
		wg.Add(1)
		go func(event StorableEvent) {
			defer wg.Done()
			results <- es.Append(context.Background(), filter, maxSequenceNumber, event)
		}(event)
	}
	wg.Wait()
	close(results)

	// assert
	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrConcurrencyConflict)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 2, es.Len())
}

func Test_NewEventStore_RejectsNilOptions(t *testing.T) {
	_, err := NewEventStore(WithLogger(nil))
	assert.ErrorIs(t, err, ErrNilLogger)

	_, err = NewEventStore(WithContextualLogger(nil))
	assert.ErrorIs(t, err, ErrNilLogger)

	_, err = NewEventStore(WithMetrics(nil))
	assert.ErrorIs(t, err, ErrNilMetricsCollector)

	_, err = NewEventStore(WithTracing(nil))
	assert.ErrorIs(t, err, ErrNilTracingCollector)
}
