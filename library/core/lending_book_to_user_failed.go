package core

import (
	"time"
)

// LendingBookToUserFailedEventType is the event type identifier.
const LendingBookToUserFailedEventType = "LendingBookToUserFailed"

// LendingBookToUserFailed represents when lending a book to a user is rejected by a business rule.
type LendingBookToUserFailed struct {
	BookISBN    ISBNString
	UserID      UserIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildLendingBookToUserFailed creates a new LendingBookToUserFailed event.
func BuildLendingBookToUserFailed(isbn string, userID string, failureInfo string, occurredAt time.Time) LendingBookToUserFailed {
	return LendingBookToUserFailed{
		BookISBN:    isbn,
		UserID:      userID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LendingBookToUserFailed) EventType() string {
	return LendingBookToUserFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LendingBookToUserFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected loan request.
func (e LendingBookToUserFailed) IsErrorEvent() bool {
	return true
}
