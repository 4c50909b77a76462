package library

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the generic kind of all construction and update validation failures.
	ErrValidation = errors.New("validation failed")

	ErrEmptyISBN   = errors.New("isbn must not be empty")
	ErrEmptyTitle  = errors.New("title must not be empty")
	ErrEmptyAuthor = errors.New("author must not be empty")
	ErrEmptyUserID = errors.New("user id must not be empty")
	ErrEmptyName   = errors.New("name must not be empty")
	ErrEmptyLoanID = errors.New("loan id must not be empty")

	// ErrNotFound is the generic kind of ErrBookNotFound and ErrUserNotFound.
	ErrNotFound = errors.New("not found")

	ErrBookNotFound = fmt.Errorf("book %w", ErrNotFound)
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	ErrBookUnavailable   = errors.New("book is not available")
	ErrLoanLimitExceeded = errors.New("loan limit exceeded")
	ErrLoanIDConflict    = errors.New("loan id is already in use")

	// ErrInconsistentState means the catalog, the registry, and the loans disagree; nothing was changed.
	ErrInconsistentState = errors.New("library state is inconsistent")
)

// validationError joins ErrValidation with the non-nil field errors, or returns nil if there are none.
func validationError(fieldErrs ...error) error {
	if err := errors.Join(fieldErrs...); err == nil {
		return nil
	}

	return errors.Join(append([]error{ErrValidation}, fieldErrs...)...)
}

func requireNonEmpty(value string, err error) error {
	if value == "" {
		return err
	}

	return nil
}
