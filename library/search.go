package library

import (
	"strings"
)

// SearchCriterion restricts the result of Library.SearchBooks.
type SearchCriterion func(*Book) bool

// TitleContains matches books whose title contains the substring, ignoring case.
func TitleContains(substring string) SearchCriterion {
	substring = strings.ToLower(substring)

	return func(b *Book) bool {
		return strings.Contains(strings.ToLower(b.title), substring)
	}
}

// AuthorContains matches books whose author contains the substring, ignoring case.
func AuthorContains(substring string) SearchCriterion {
	substring = strings.ToLower(substring)

	return func(b *Book) bool {
		return strings.Contains(strings.ToLower(b.author), substring)
	}
}

// IsAvailable matches books with the given availability.
func IsAvailable(available bool) SearchCriterion {
	return func(b *Book) bool {
		return b.available == available
	}
}

// SearchBooks returns the books matching all criteria, in catalog order.
// Without criteria it returns the whole catalog.
func (l *Library) SearchBooks(criteria ...SearchCriterion) []*Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	found := make([]*Book, 0)

	for _, isbn := range l.bookISBNs {
		book := l.books[isbn]
		if matchesAll(book, criteria) {
			found = append(found, book)
		}
	}

	return found
}

func matchesAll(book *Book, criteria []SearchCriterion) bool {
	for _, matches := range criteria {
		if !matches(book) {
			return false
		}
	}

	return true
}
