package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
	"github.com/AntonStoeckl/library-lending-go/library/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookAddedToCatalogEventType:
		return unmarshalInto[core.BookAddedToCatalog](storableEvent.PayloadJSON)

	case core.BookUpdatedInCatalogEventType:
		return unmarshalInto[core.BookUpdatedInCatalog](storableEvent.PayloadJSON)

	case core.BookRemovedFromCatalogEventType:
		return unmarshalInto[core.BookRemovedFromCatalog](storableEvent.PayloadJSON)

	case core.UserRegisteredEventType:
		return unmarshalInto[core.UserRegistered](storableEvent.PayloadJSON)

	case core.UserRemovedEventType:
		return unmarshalInto[core.UserRemoved](storableEvent.PayloadJSON)

	case core.BookLentToUserEventType:
		return unmarshalInto[core.BookLentToUser](storableEvent.PayloadJSON)

	case core.BookReturnedByUserEventType:
		return unmarshalInto[core.BookReturnedByUser](storableEvent.PayloadJSON)

	case core.LendingBookToUserFailedEventType:
		return unmarshalInto[core.LendingBookToUserFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalInto[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
