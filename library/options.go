package library

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

var (
	ErrNilClock            = errors.New("clock must not be nil")
	ErrNilLogger           = errors.New("logger must not be nil")
	ErrNilMetricsCollector = errors.New("metrics collector must not be nil")
	ErrNilEventStore       = errors.New("event store must not be nil")
	ErrNilLoanIDGenerator  = errors.New("loan id generator must not be nil")
)

// Option defines a functional option for configuring a Library.
type Option func(*Library) error

// WithClock sets the time source for loan creation, returns, and ListOverdueLoans.
func WithClock(now func() time.Time) Option {
	return func(l *Library) error {
		if now == nil {
			return ErrNilClock
		}

		l.now = now

		return nil
	}
}

// WithLogger sets the logger for the Library.
//
// Info level: state changes of the catalog, the registry, and the loans
// Warn level: rejected loan requests
// Error level: events that could not be recorded.
func WithLogger(logger eventstore.Logger) Option {
	return func(l *Library) error {
		if logger == nil {
			return ErrNilLogger
		}

		l.logger = logger

		return nil
	}
}

// WithMetrics sets the metrics collector for operation counts, durations, and the active loans gauge.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(l *Library) error {
		if collector == nil {
			return ErrNilMetricsCollector
		}

		l.metricsCollector = collector

		return nil
	}
}

// WithEventStore enables recording a domain event for every state change into the given journal.
func WithEventStore(journal shell.EventJournal) Option {
	return func(l *Library) error {
		if journal == nil {
			return ErrNilEventStore
		}

		l.journal = journal

		return nil
	}
}

// WithLoanIDGenerator replaces the default UUID generator for loan IDs.
func WithLoanIDGenerator(newID func() string) Option {
	return func(l *Library) error {
		if newID == nil {
			return ErrNilLoanIDGenerator
		}

		l.newLoanID = newID

		return nil
	}
}
