package core

import (
	"time"
)

// UserRegisteredEventType is the event type identifier.
const UserRegisteredEventType = "UserRegistered"

// UserRegistered represents when a user joins the library registry.
type UserRegistered struct {
	UserID     UserIDString
	Name       string
	OccurredAt OccurredAtTS
}

// BuildUserRegistered creates a new UserRegistered event.
func BuildUserRegistered(userID string, name string, occurredAt time.Time) UserRegistered {
	return UserRegistered{
		UserID:     userID,
		Name:       name,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e UserRegistered) EventType() string {
	return UserRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e UserRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e UserRegistered) IsErrorEvent() bool {
	return false
}
