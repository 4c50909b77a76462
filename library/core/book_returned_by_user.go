package core

import (
	"time"
)

// BookReturnedByUserEventType is the event type identifier.
const BookReturnedByUserEventType = "BookReturnedByUser"

// BookReturnedByUser represents when a lent book comes back, closing the loan.
type BookReturnedByUser struct {
	LoanID     LoanIDString
	BookISBN   ISBNString
	UserID     UserIDString
	OccurredAt OccurredAtTS
}

// BuildBookReturnedByUser creates a new BookReturnedByUser event.
func BuildBookReturnedByUser(loanID string, isbn string, userID string, occurredAt time.Time) BookReturnedByUser {
	return BookReturnedByUser{
		LoanID:     loanID,
		BookISBN:   isbn,
		UserID:     userID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookReturnedByUser) EventType() string {
	return BookReturnedByUserEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturnedByUser) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturnedByUser) IsErrorEvent() bool {
	return false
}
