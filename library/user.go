package library

import (
	"fmt"
	"slices"
)

// MaxBorrowedBooks is the number of books a user may hold at the same time.
const MaxBorrowedBooks = 5

// User is one registered patron, identified by ID.
type User struct {
	id            string
	name          string
	borrowedISBNs []string
}

// NewUser creates a User without borrowed books. It fails with ErrValidation if id or name is empty.
func NewUser(id, name string) (*User, error) {
	err := validationError(
		requireNonEmpty(id, ErrEmptyUserID),
		requireNonEmpty(name, ErrEmptyName),
	)
	if err != nil {
		return nil, err
	}

	return &User{id: id, name: name, borrowedISBNs: make([]string, 0, MaxBorrowedBooks)}, nil
}

// ID returns the registry key of the user.
func (u *User) ID() string { return u.id }

// Name returns the display name.
func (u *User) Name() string { return u.name }

// BorrowedISBNs returns the ISBNs of the borrowed books in borrowing order.
// The returned slice is a copy.
func (u *User) BorrowedISBNs() []string {
	return slices.Clone(u.borrowedISBNs)
}

// HasBook reports whether the user currently holds the book with the given ISBN.
func (u *User) HasBook(isbn string) bool {
	return slices.Contains(u.borrowedISBNs, isbn)
}

// BorrowedCount returns the number of books the user currently holds.
func (u *User) BorrowedCount() int {
	return len(u.borrowedISBNs)
}

// CanBorrow reports whether the user is below MaxBorrowedBooks.
func (u *User) CanBorrow() bool {
	return u.BorrowedCount() < MaxBorrowedBooks
}

// Equal reports whether both users have the same ID.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}

	return u.id == other.id
}

// String renders the user as "User: Name (ID: id) - N borrowed books".
func (u *User) String() string {
	return fmt.Sprintf("User: %s (ID: %s) - %d borrowed books", u.name, u.id, u.BorrowedCount())
}

// clone returns an independent copy, so the registry never shares state with its caller.
func (u *User) clone() *User {
	c := *u
	c.borrowedISBNs = append(make([]string, 0, MaxBorrowedBooks), u.borrowedISBNs...)

	return &c
}

// addLoan records a borrowed book. The limit is checked before duplicates,
// so a user at the limit gets ErrLoanLimitExceeded even for a book they already hold.
func (u *User) addLoan(isbn string) (bool, error) {
	if !u.CanBorrow() {
		return false, fmt.Errorf("user %q already holds %d books: %w", u.id, MaxBorrowedBooks, ErrLoanLimitExceeded)
	}

	if u.HasBook(isbn) {
		return false, nil
	}

	u.borrowedISBNs = append(u.borrowedISBNs, isbn)

	return true, nil
}

// removeLoan forgets a borrowed book; false if the user did not hold it.
func (u *User) removeLoan(isbn string) bool {
	i := slices.Index(u.borrowedISBNs, isbn)
	if i < 0 {
		return false
	}

	u.borrowedISBNs = slices.Delete(u.borrowedISBNs, i, i+1)

	return true
}
