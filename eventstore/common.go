package eventstore

import (
	"errors"
)

var ErrConcurrencyConflict = errors.New("concurrency error, the event stream has changed since it was queried")
var ErrNoEventsToAppend = errors.New("no events supplied to append")

// MaxSequenceNumberUint is a type alias for uint, representing the maximum sequence number for a "dynamic event stream".
type MaxSequenceNumberUint = uint
