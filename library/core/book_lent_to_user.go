package core

import (
	"time"
)

// BookLentToUserEventType is the event type identifier.
const BookLentToUserEventType = "BookLentToUser"

// BookLentToUser represents when a book is lent to a user, opening a loan.
type BookLentToUser struct {
	LoanID     LoanIDString
	BookISBN   ISBNString
	UserID     UserIDString
	DueAt      time.Time
	OccurredAt OccurredAtTS
}

// BuildBookLentToUser creates a new BookLentToUser event.
func BuildBookLentToUser(loanID string, isbn string, userID string, dueAt time.Time, occurredAt time.Time) BookLentToUser {
	return BookLentToUser{
		LoanID:     loanID,
		BookISBN:   isbn,
		UserID:     userID,
		DueAt:      ToOccurredAt(dueAt),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookLentToUser) EventType() string {
	return BookLentToUserEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookLentToUser) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookLentToUser) IsErrorEvent() bool {
	return false
}
