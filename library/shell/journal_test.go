package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
	"github.com/AntonStoeckl/library-lending-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
	"github.com/AntonStoeckl/library-lending-go/testutil/helper"
)

// conflictingJournal reports a concurrency conflict for the first failures appends.
type conflictingJournal struct {
	*memoryengine.EventStore
	failures int
	appends  int
}

func (j *conflictingJournal) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvents ...eventstore.StorableEvent,
) error {
	j.appends++
	if j.appends <= j.failures {
		return eventstore.ErrConcurrencyConflict
	}

	return j.EventStore.Append(ctx, filter, expectedMaxSequenceNumber, storableEvents...)
}

func givenJournal(t *testing.T) *memoryengine.EventStore {
	es, err := memoryengine.NewEventStore()
	require.NoError(t, err)

	return es
}

func Test_Record_AppendsToTheStreamOfTheEvent(t *testing.T) {
	// arrange
	es := givenJournal(t)
	ctx := context.Background()
	require.NoError(t, shell.Record(ctx, es, core.BuildBookAddedToCatalog("isbn-1", "Clean Code", "Robert Martin", occurredAt)))
	require.NoError(t, shell.Record(ctx, es, core.BuildUserRegistered("U001", "Ana", occurredAt)))

	// act
	err := shell.Record(ctx, es, core.BuildBookLentToUser("L1", "isbn-1", "U001", occurredAt, occurredAt))

	// assert
	require.NoError(t, err)
	bookEvents, _, err := es.Query(ctx, shell.BookStreamFilter("isbn-1"))
	require.NoError(t, err)
	assert.Len(t, bookEvents, 2)
	userEvents, _, err := es.Query(ctx, shell.UserStreamFilter("U001"))
	require.NoError(t, err)
	assert.Len(t, userEvents, 2)
	loanEvents, maxSequenceNumber, err := es.Query(ctx, shell.LoanStreamFilter("L1"))
	require.NoError(t, err)
	require.Len(t, loanEvents, 1)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(3), maxSequenceNumber)

	domainEvents, err := shell.DomainEventsFrom(loanEvents)
	require.NoError(t, err)
	assert.IsType(t, core.BookLentToUser{}, domainEvents[0])
}

func Test_Record_RetriesOnConcurrencyConflict(t *testing.T) {
	// arrange
	metricsSpy := helper.NewMetricsCollectorSpy(true)
	journal := &conflictingJournal{EventStore: givenJournal(t), failures: 2}

	// act
	err := shell.Record(
		context.Background(),
		journal,
		core.BuildUserRegistered("U001", "Ana", occurredAt),
		shell.WithBaseDelay(time.Millisecond),
		shell.WithRetryMetrics(metricsSpy, core.UserRegisteredEventType),
	)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, journal.appends)
	assert.Equal(t, 1, journal.Len())
	assert.Equal(t, 2, metricsSpy.HasCounterRecordForMetric(shell.JournalRetriesMetric).WithLabel("event_type", core.UserRegisteredEventType).Count())
	assert.False(t, metricsSpy.HasCounterRecordForMetric(shell.JournalMaxRetriesReachedMetric).Assert())
}

func Test_Record_GivesUpAfterMaxAttempts(t *testing.T) {
	// arrange
	metricsSpy := helper.NewMetricsCollectorSpy(true)
	journal := &conflictingJournal{EventStore: givenJournal(t), failures: 10}

	// act
	err := shell.Record(
		context.Background(),
		journal,
		core.BuildUserRegistered("U001", "Ana", occurredAt),
		shell.WithMaxAttempts(3),
		shell.WithBaseDelay(0),
		shell.WithRetryMetrics(metricsSpy, core.UserRegisteredEventType),
	)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 3, journal.appends)
	assert.Equal(t, 0, journal.Len())
	assert.True(t,
		metricsSpy.HasCounterRecordForMetric(shell.JournalMaxRetriesReachedMetric).
			WithLabel("final_error_type", "concurrency_conflict").
			Assert())
}

func Test_RetryWithExponentialBackoff_FailsFastOnOtherErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0

	err := shell.RetryWithExponentialBackoff(ctx, func(ctx context.Context) error {
		calls++
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	ctx := context.Background()
	fn := func(_ context.Context) error { return nil }

	assert.ErrorIs(t, shell.RetryWithExponentialBackoff(ctx, fn, shell.WithMaxAttempts(0)), shell.ErrInvalidMaxAttempts)
	assert.ErrorIs(t, shell.RetryWithExponentialBackoff(ctx, fn, shell.WithBaseDelay(-time.Second)), shell.ErrNegativeBaseDelay)
	assert.ErrorIs(t, shell.RetryWithExponentialBackoff(ctx, fn, shell.WithJitterFactor(1.5)), shell.ErrInvalidJitterFactor)
	assert.ErrorIs(t, shell.RetryWithExponentialBackoff(ctx, fn, shell.WithRetryMetrics(nil, "x")), shell.ErrNilMetricsCollector)
	assert.ErrorIs(t,
		shell.RetryWithExponentialBackoff(ctx, fn, shell.WithRetryMetrics(helper.NewMetricsCollectorSpy(false), "")),
		shell.ErrEmptyEventType)
}
