package library

import (
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// CreateLoan lends the book to the user. The checks run in this order:
//   - the book exists, else ErrBookNotFound
//   - the book is available, else ErrBookUnavailable
//   - the user exists, else ErrUserNotFound
//   - the user is below MaxBorrowedBooks, else ErrLoanLimitExceeded
//
// All checks run before the first mutation, so a failed call changes nothing.
// The loan date is taken from the library's clock.
func (l *Library) CreateLoan(bookISBN, userID string) (*Loan, error) {
	return l.CreateLoanAt(bookISBN, userID, time.Time{})
}

// CreateLoanAt works like CreateLoan with the given loan date; zero means the library's clock.
func (l *Library) CreateLoanAt(bookISBN, userID string, at time.Time) (*Loan, error) {
	start := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowOr(at)

	book, user, err := l.checkLending(bookISBN, userID)
	if err != nil {
		l.rejectLending(bookISBN, userID, err, now, start)
		return nil, err
	}

	loanID := l.newLoanID()
	if _, exists := l.loans[loanID]; exists {
		err = fmt.Errorf("lending book %q to user %q: loan %q: %w", bookISBN, userID, loanID, ErrLoanIDConflict)
		l.rejectLending(bookISBN, userID, err, now, start)

		return nil, err
	}

	loan, err := NewLoan(loanID, bookISBN, userID, WithLoanDate(now))
	if err != nil {
		l.rejectLending(bookISBN, userID, err, now, start)
		return nil, err
	}

	added, err := user.addLoan(bookISBN)
	if err == nil && !added {
		err = fmt.Errorf("lending book %q to user %q: user already holds it: %w", bookISBN, userID, ErrInconsistentState)
	}

	if err != nil {
		l.rejectLending(bookISBN, userID, err, now, start)
		return nil, err
	}

	book.borrow()
	l.loans[loan.id] = loan
	l.loanIDs = append(l.loanIDs, loan.id)

	l.logInfo(logMsgBookLent, logAttrISBN, bookISBN, logAttrUserID, userID, logAttrLoanID, loan.id)
	l.record(core.BuildBookLentToUser(loan.id, bookISBN, userID, loan.dueDate, now))
	l.observe(operationCreateLoan, statusSuccess, start)
	l.recordActiveLoans()

	return loan, nil
}

func (l *Library) checkLending(bookISBN, userID string) (*Book, *User, error) {
	wrap := func(err error) error {
		return fmt.Errorf("lending book %q to user %q: %w", bookISBN, userID, err)
	}

	book, ok := l.books[bookISBN]
	if !ok {
		return nil, nil, wrap(ErrBookNotFound)
	}

	if !book.available {
		return nil, nil, wrap(ErrBookUnavailable)
	}

	user, ok := l.users[userID]
	if !ok {
		return nil, nil, wrap(ErrUserNotFound)
	}

	if !user.CanBorrow() {
		return nil, nil, wrap(ErrLoanLimitExceeded)
	}

	return book, user, nil
}

func (l *Library) rejectLending(bookISBN, userID string, err error, now, start time.Time) {
	reason := rejectionReasonOf(err)

	l.logWarn(logMsgLendingRejected, logAttrISBN, bookISBN, logAttrUserID, userID, logAttrReason, reason)
	l.record(core.BuildLendingBookToUserFailed(bookISBN, userID, err.Error(), now))

	status := statusRejected
	if reason == reasonOther {
		status = statusError
	}

	l.observe(operationCreateLoan, status, start)
}

func rejectionReasonOf(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return reasonBookNotFound
	case errors.Is(err, ErrBookUnavailable):
		return reasonBookUnavailable
	case errors.Is(err, ErrUserNotFound):
		return reasonUserNotFound
	case errors.Is(err, ErrLoanLimitExceeded):
		return reasonLoanLimitExceeded
	default:
		return reasonOther
	}
}

// ReturnLoan closes an active loan; false if the loan is absent or already returned.
// A book or user that left the library in the meantime is skipped, the loan is still closed.
// The return date is taken from the library's clock.
func (l *Library) ReturnLoan(loanID string) bool {
	return l.ReturnLoanAt(loanID, time.Time{})
}

// ReturnLoanAt works like ReturnLoan with the given return date; zero means the library's clock.
func (l *Library) ReturnLoanAt(loanID string, at time.Time) bool {
	start := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	loan, ok := l.loans[loanID]
	if !ok || !loan.IsActive() {
		l.observe(operationReturnLoan, statusRejected, start)
		return false
	}

	now := l.nowOr(at)

	if book, found := l.books[loan.bookISBN]; found {
		book.giveBack()
	}

	if user, found := l.users[loan.userID]; found {
		user.removeLoan(loan.bookISBN)
	}

	loan.markReturned(now)

	l.logInfo(logMsgBookReturned, logAttrISBN, loan.bookISBN, logAttrUserID, loan.userID, logAttrLoanID, loanID)
	l.record(core.BuildBookReturnedByUser(loanID, loan.bookISBN, loan.userID, now))
	l.observe(operationReturnLoan, statusSuccess, start)
	l.recordActiveLoans()

	return true
}

// GetLoan returns active and returned loans alike.
func (l *Library) GetLoan(id string) (*Loan, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	loan, ok := l.loans[id]

	return loan, ok
}

// ListActiveLoans returns all active loans in creation order.
func (l *Library) ListActiveLoans() []*Loan {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.selectLoans(func(loan *Loan) bool {
		return loan.IsActive()
	})
}

// ListUserLoans returns the active loans of one user in creation order.
func (l *Library) ListUserLoans(userID string) []*Loan {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.selectLoans(func(loan *Loan) bool {
		return loan.userID == userID && loan.IsActive()
	})
}

// ListOverdueLoans returns the loans that are overdue according to the library's clock.
func (l *Library) ListOverdueLoans() []*Loan {
	return l.ListOverdueLoansAt(time.Time{})
}

// ListOverdueLoansAt returns the loans that are overdue at asOf; zero means the library's clock.
func (l *Library) ListOverdueLoansAt(asOf time.Time) []*Loan {
	l.mu.RLock()
	defer l.mu.RUnlock()

	asOf = l.nowOr(asOf)

	return l.selectLoans(func(loan *Loan) bool {
		return loan.IsOverdue(asOf)
	})
}

// TotalActiveLoans returns the number of books currently lent out.
func (l *Library) TotalActiveLoans() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.countActiveLoans()
}

// selectLoans must be called while holding at least the read lock.
func (l *Library) selectLoans(keep func(*Loan) bool) []*Loan {
	selected := make([]*Loan, 0)

	for _, id := range l.loanIDs {
		if loan := l.loans[id]; keep(loan) {
			selected = append(selected, loan)
		}
	}

	return selected
}

func (l *Library) countActiveLoans() int {
	count := 0

	for _, loan := range l.loans {
		if loan.IsActive() {
			count++
		}
	}

	return count
}

func (l *Library) nowOr(at time.Time) time.Time {
	if at.IsZero() {
		return l.now()
	}

	return at
}
