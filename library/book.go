package library

import (
	"fmt"
)

// Book is one catalog entry, identified by its ISBN.
type Book struct {
	isbn      string
	title     string
	author    string
	available bool
}

// BookOption configures a Book at construction.
type BookOption func(*Book)

// WithAvailability sets the initial availability flag, which defaults to true.
func WithAvailability(available bool) BookOption {
	return func(b *Book) {
		b.available = available
	}
}

// NewBook creates a Book. It fails with ErrValidation if isbn, title, or author is empty.
func NewBook(isbn, title, author string, opts ...BookOption) (*Book, error) {
	err := validationError(
		requireNonEmpty(isbn, ErrEmptyISBN),
		requireNonEmpty(title, ErrEmptyTitle),
		requireNonEmpty(author, ErrEmptyAuthor),
	)
	if err != nil {
		return nil, err
	}

	b := &Book{isbn: isbn, title: title, author: author, available: true}
	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// ISBN returns the catalog key of the book.
func (b *Book) ISBN() string { return b.isbn }

// Title returns the current title.
func (b *Book) Title() string { return b.title }

// Author returns the current author.
func (b *Book) Author() string { return b.author }

// Available reports whether the book can be lent out.
func (b *Book) Available() bool { return b.available }

// Equal reports whether both books have the same ISBN.
func (b *Book) Equal(other *Book) bool {
	if b == nil || other == nil {
		return b == other
	}

	return b.isbn == other.isbn
}

// String renders the book as "Title by Author (ISBN: isbn) - Available|Borrowed".
func (b *Book) String() string {
	state := "Available"
	if !b.available {
		state = "Borrowed"
	}

	return fmt.Sprintf("%s by %s (ISBN: %s) - %s", b.title, b.author, b.isbn, state)
}

// clone returns an independent copy, so the catalog never shares state with its caller.
func (b *Book) clone() *Book {
	c := *b
	return &c
}

// borrow marks the book as lent out; false if it already was.
func (b *Book) borrow() bool {
	if !b.available {
		return false
	}

	b.available = false

	return true
}

// giveBack marks the book as available again; false if it already was.
func (b *Book) giveBack() bool {
	if b.available {
		return false
	}

	b.available = true

	return true
}

// BookUpdate changes the title or author of a catalog entry, see Library.UpdateBook.
type BookUpdate func(*Book) error

// WithTitle replaces the title.
func WithTitle(title string) BookUpdate {
	return func(b *Book) error {
		if title == "" {
			return validationError(ErrEmptyTitle)
		}

		b.title = title

		return nil
	}
}

// WithAuthor replaces the author.
func WithAuthor(author string) BookUpdate {
	return func(b *Book) error {
		if author == "" {
			return validationError(ErrEmptyAuthor)
		}

		b.author = author

		return nil
	}
}
