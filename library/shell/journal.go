package shell

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// Payload keys used to select the stream of a book, a user, or a loan.
const (
	PayloadKeyBookISBN = "BookISBN"
	PayloadKeyUserID   = "UserID"
	PayloadKeyLoanID   = "LoanID"
)

// EventJournal is what Record needs from an event store; *memoryengine.EventStore satisfies it.
type EventJournal interface {
	Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error)
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		storableEvents ...eventstore.StorableEvent,
	) error
}

// Record appends the event to the stream selected by StreamFilterFor, retrying on concurrency conflicts.
func Record(ctx context.Context, journal EventJournal, event core.DomainEvent, options ...RetryOption) error {
	storableEvent, err := StorableEventFrom(event, NewEventMetadata())
	if err != nil {
		return err
	}

	filter := StreamFilterFor(event)

	return RetryWithExponentialBackoff(
		ctx,
		func(ctx context.Context) error {
			_, maxSequenceNumber, err := journal.Query(ctx, filter)
			if err != nil {
				return err
			}

			return journal.Append(ctx, filter, maxSequenceNumber, storableEvent)
		},
		options...,
	)
}

// StreamFilterFor selects the events that share an entity with the given event.
// Lending events touch both a book and a user, so their stream spans both.
func StreamFilterFor(event core.DomainEvent) eventstore.Filter {
	switch e := event.(type) {
	case core.BookAddedToCatalog:
		return BookStreamFilter(e.BookISBN)
	case core.BookUpdatedInCatalog:
		return BookStreamFilter(e.BookISBN)
	case core.BookRemovedFromCatalog:
		return BookStreamFilter(e.BookISBN)
	case core.UserRegistered:
		return UserStreamFilter(e.UserID)
	case core.UserRemoved:
		return UserStreamFilter(e.UserID)
	case core.BookLentToUser:
		return lendingStreamFilter(e.BookISBN, e.UserID)
	case core.BookReturnedByUser:
		return lendingStreamFilter(e.BookISBN, e.UserID)
	case core.LendingBookToUserFailed:
		return lendingStreamFilter(e.BookISBN, e.UserID)
	default:
		return eventstore.BuildEventFilter().MatchingAnyEvent()
	}
}

// BookStreamFilter selects all events about the book with the given ISBN.
func BookStreamFilter(isbn string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P(PayloadKeyBookISBN, isbn)).
		Finalize()
}

// UserStreamFilter selects all events about the user with the given ID.
func UserStreamFilter(userID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P(PayloadKeyUserID, userID)).
		Finalize()
}

// LoanStreamFilter selects the lending and return events of one loan.
func LoanStreamFilter(loanID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookLentToUserEventType, core.BookReturnedByUserEventType).
		AndAnyPredicateOf(eventstore.P(PayloadKeyLoanID, loanID)).
		Finalize()
}

func lendingStreamFilter(isbn, userID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P(PayloadKeyBookISBN, isbn), eventstore.P(PayloadKeyUserID, userID)).
		Finalize()
}
