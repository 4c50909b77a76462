package library

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

const (
	metricOperationsTotal   = "library_operations_total"
	metricOperationDuration = "library_operation_duration_seconds"
	metricActiveLoans       = "library_active_loans"

	operationAddBook      = "add_book"
	operationUpdateBook   = "update_book"
	operationRemoveBook   = "remove_book"
	operationRegisterUser = "register_user"
	operationRemoveUser   = "remove_user"
	operationCreateLoan   = "create_loan"
	operationReturnLoan   = "return_loan"

	statusSuccess  = "success"
	statusRejected = "rejected"
	statusError    = "error"

	reasonBookNotFound      = "book_not_found"
	reasonBookUnavailable   = "book_unavailable"
	reasonUserNotFound      = "user_not_found"
	reasonLoanLimitExceeded = "loan_limit_exceeded"
	reasonOther             = "other"

	logMsgBookAdded       = "book added to catalog"
	logMsgBookUpdated     = "book updated in catalog"
	logMsgBookRemoved     = "book removed from catalog"
	logMsgUserRegistered  = "user registered"
	logMsgUserRemoved     = "user removed"
	logMsgBookLent        = "book lent to user"
	logMsgBookReturned    = "book returned by user"
	logMsgLendingRejected = "lending book to user rejected"
	logMsgRecordingFailed = "recording event failed"

	logAttrISBN      = "isbn"
	logAttrUserID    = "user_id"
	logAttrLoanID    = "loan_id"
	logAttrReason    = "reason"
	logAttrEventType = "event_type"
	logAttrError     = "error"

	labelOperation = "operation"
	labelStatus    = "status"
)

func (l *Library) logInfo(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l *Library) logWarn(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}

func (l *Library) logError(msg string, err error, args ...any) {
	if l.logger != nil {
		l.logger.Error(msg, append([]any{logAttrError, err.Error()}, args...)...)
	}
}

// observe counts the operation by outcome and records its duration.
func (l *Library) observe(operation, status string, start time.Time) {
	if l.metricsCollector == nil {
		return
	}

	l.metricsCollector.IncrementCounter(metricOperationsTotal, map[string]string{labelOperation: operation, labelStatus: status})
	l.metricsCollector.RecordDuration(metricOperationDuration, time.Since(start), map[string]string{labelOperation: operation})
}

// recordActiveLoans must be called while holding the lock.
func (l *Library) recordActiveLoans() {
	if l.metricsCollector == nil {
		return
	}

	l.metricsCollector.RecordValue(metricActiveLoans, float64(l.countActiveLoans()), map[string]string{})
}

// record appends the event to the journal, if there is one. Failures are logged only.
// It runs under the library lock, so a conflicting append is not retried with backoff.
func (l *Library) record(event core.DomainEvent) {
	if l.journal == nil {
		return
	}

	retryOptions := []shell.RetryOption{shell.WithMaxAttempts(1)}
	if l.metricsCollector != nil {
		retryOptions = append(retryOptions, shell.WithRetryMetrics(l.metricsCollector, event.EventType()))
	}

	if err := shell.Record(context.Background(), l.journal, event, retryOptions...); err != nil {
		l.logError(logMsgRecordingFailed, err, logAttrEventType, event.EventType())
	}
}
