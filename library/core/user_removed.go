package core

import (
	"time"
)

// UserRemovedEventType is the event type identifier.
const UserRemovedEventType = "UserRemoved"

// UserRemoved represents when a user leaves the library registry.
type UserRemoved struct {
	UserID     UserIDString
	OccurredAt OccurredAtTS
}

// BuildUserRemoved creates a new UserRemoved event.
func BuildUserRemoved(userID string, occurredAt time.Time) UserRemoved {
	return UserRemoved{
		UserID:     userID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e UserRemoved) EventType() string {
	return UserRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e UserRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e UserRemoved) IsErrorEvent() bool {
	return false
}
