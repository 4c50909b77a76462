package core

import (
	"time"
)

// ISBNString identifies a book in the catalog.
type ISBNString = string

// UserIDString identifies a user in the registry.
type UserIDString = string

// LoanIDString identifies a loan.
type LoanIDString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt normalizes a time to UTC with microsecond precision, so it survives a JSON round trip unchanged.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
