package core

import (
	"time"
)

// BookUpdatedInCatalogEventType is the event type identifier.
const BookUpdatedInCatalogEventType = "BookUpdatedInCatalog"

// BookUpdatedInCatalog represents when the title or author of a catalog entry was corrected.
// It carries the full state after the update.
type BookUpdatedInCatalog struct {
	BookISBN   ISBNString
	Title      string
	Author     string
	OccurredAt OccurredAtTS
}

// BuildBookUpdatedInCatalog creates a new BookUpdatedInCatalog event.
func BuildBookUpdatedInCatalog(isbn string, title string, author string, occurredAt time.Time) BookUpdatedInCatalog {
	return BookUpdatedInCatalog{
		BookISBN:   isbn,
		Title:      title,
		Author:     author,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookUpdatedInCatalog) EventType() string {
	return BookUpdatedInCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookUpdatedInCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookUpdatedInCatalog) IsErrorEvent() bool {
	return false
}
