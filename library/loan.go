package library

import (
	"fmt"
	"time"
)

// LoanPeriod is the time between lending a book and its due date.
const LoanPeriod = 14 * 24 * time.Hour

const day = 24 * time.Hour

// Loan records one book being lent to one user. It references both by identifier,
// so it stays valid after the book or the user left the library.
type Loan struct {
	id         string
	bookISBN   string
	userID     string
	loanDate   time.Time
	dueDate    time.Time
	returnDate *time.Time
}

// LoanOption configures a Loan at construction.
type LoanOption func(*Loan)

// WithLoanDate sets the loan date, which defaults to the current time.
func WithLoanDate(at time.Time) LoanOption {
	return func(l *Loan) {
		l.loanDate = at
	}
}

// WithReturnDate creates the loan as already returned.
func WithReturnDate(at time.Time) LoanOption {
	return func(l *Loan) {
		l.returnDate = &at
	}
}

// NewLoan creates a Loan due LoanPeriod after its loan date.
// It fails with ErrValidation if id, bookISBN, or userID is empty.
func NewLoan(id, bookISBN, userID string, opts ...LoanOption) (*Loan, error) {
	err := validationError(
		requireNonEmpty(id, ErrEmptyLoanID),
		requireNonEmpty(bookISBN, ErrEmptyISBN),
		requireNonEmpty(userID, ErrEmptyUserID),
	)
	if err != nil {
		return nil, err
	}

	l := &Loan{id: id, bookISBN: bookISBN, userID: userID}
	for _, opt := range opts {
		opt(l)
	}

	l.loanDate = orNow(l.loanDate)
	l.dueDate = l.loanDate.Add(LoanPeriod)

	return l, nil
}

// ID returns the unique loan identifier.
func (l *Loan) ID() string { return l.id }

// BookISBN returns the ISBN of the lent book.
func (l *Loan) BookISBN() string { return l.bookISBN }

// UserID returns the ID of the borrowing user.
func (l *Loan) UserID() string { return l.userID }

// LoanDate returns when the book was lent.
func (l *Loan) LoanDate() time.Time { return l.loanDate }

// DueDate returns LoanDate plus LoanPeriod; it never changes.
func (l *Loan) DueDate() time.Time { return l.dueDate }

// IsActive reports whether the book has not been returned yet.
func (l *Loan) IsActive() bool { return l.returnDate == nil }

// ReturnDate returns the return date and true, or false while the loan is active.
func (l *Loan) ReturnDate() (time.Time, bool) {
	if l.returnDate == nil {
		return time.Time{}, false
	}

	return *l.returnDate, true
}

// IsOverdue reports whether the loan is active and its due date lies before asOf.
func (l *Loan) IsOverdue(asOf time.Time) bool {
	return l.IsActive() && orNow(asOf).After(l.dueDate)
}

// DaysRemaining returns the whole days left until the due date, truncated.
// It is 0 for returned and overdue loans.
func (l *Loan) DaysRemaining(asOf time.Time) int {
	if !l.IsActive() {
		return 0
	}

	remaining := l.dueDate.Sub(orNow(asOf))
	if remaining <= 0 {
		return 0
	}

	return int(remaining / day)
}

// Equal reports whether both loans have the same ID.
func (l *Loan) Equal(other *Loan) bool {
	if l == nil || other == nil {
		return l == other
	}

	return l.id == other.id
}

// String renders the loan as "Loan id: Book isbn to User uid - Active|Returned".
func (l *Loan) String() string {
	state := "Active"
	if !l.IsActive() {
		state = "Returned"
	}

	return fmt.Sprintf("Loan %s: Book %s to User %s - %s", l.id, l.bookISBN, l.userID, state)
}

// markReturned sets the return date once; false if the loan was already returned.
func (l *Loan) markReturned(at time.Time) bool {
	if !l.IsActive() {
		return false
	}

	at = orNow(at)
	l.returnDate = &at

	return true
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}

	return t
}
