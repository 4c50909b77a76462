package library

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
)

// Library owns the catalog, the registry, and all loans ever made.
//
// All methods are safe for concurrent use; each one runs under a single lock, so
// lending and returning are atomic with respect to each other.
// The returned entities are live views, read them only while no mutating call is in flight.
type Library struct {
	mu sync.RWMutex

	books     map[string]*Book
	bookISBNs []string
	users     map[string]*User
	userIDs   []string
	loans     map[string]*Loan
	loanIDs   []string

	now              func() time.Time
	newLoanID        func() string
	logger           eventstore.Logger
	metricsCollector eventstore.MetricsCollector
	journal          shell.EventJournal
}

// New creates an empty Library with optional configuration.
func New(opts ...Option) (*Library, error) {
	l := &Library{
		books:     make(map[string]*Book),
		users:     make(map[string]*User),
		loans:     make(map[string]*Loan),
		now:       time.Now,
		newLoanID: uuid.NewString,
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

/***** Catalog *****/

// AddBook adds a copy of the book to the catalog; false if its ISBN is already there.
// Later changes go through the Library only, read them back with GetBook.
func (l *Library) AddBook(book *Book) bool {
	start := time.Now()

	if book == nil {
		l.observe(operationAddBook, statusRejected, start)
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.books[book.isbn]; exists {
		l.observe(operationAddBook, statusRejected, start)
		return false
	}

	l.books[book.isbn] = book.clone()
	l.bookISBNs = append(l.bookISBNs, book.isbn)

	l.logInfo(logMsgBookAdded, logAttrISBN, book.isbn)
	l.record(core.BuildBookAddedToCatalog(book.isbn, book.title, book.author, l.now()))
	l.observe(operationAddBook, statusSuccess, start)

	return true
}

// GetBook returns the catalog entry for the ISBN, or false if there is none.
func (l *Library) GetBook(isbn string) (*Book, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	book, ok := l.books[isbn]

	return book, ok
}

// RemoveBook removes a book from the catalog; false if it is absent or currently lent out.
func (l *Library) RemoveBook(isbn string) bool {
	start := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	book, ok := l.books[isbn]
	if !ok || !book.available {
		l.observe(operationRemoveBook, statusRejected, start)
		return false
	}

	delete(l.books, isbn)
	l.bookISBNs = deleteKey(l.bookISBNs, isbn)

	l.logInfo(logMsgBookRemoved, logAttrISBN, isbn)
	l.record(core.BuildBookRemovedFromCatalog(isbn, l.now()))
	l.observe(operationRemoveBook, statusSuccess, start)

	return true
}

// UpdateBook corrects the title or author of a catalog entry; false if the ISBN is absent.
// Either all updates apply or, if one fails validation, none does.
func (l *Library) UpdateBook(isbn string, updates ...BookUpdate) (bool, error) {
	start := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	book, ok := l.books[isbn]
	if !ok {
		l.observe(operationUpdateBook, statusRejected, start)
		return false, nil
	}

	updated := *book
	for _, update := range updates {
		if err := update(&updated); err != nil {
			l.observe(operationUpdateBook, statusError, start)
			return false, err
		}
	}

	if updated.title == book.title && updated.author == book.author {
		l.observe(operationUpdateBook, statusSuccess, start)
		return true, nil
	}

	book.title, book.author = updated.title, updated.author

	l.logInfo(logMsgBookUpdated, logAttrISBN, isbn)
	l.record(core.BuildBookUpdatedInCatalog(isbn, book.title, book.author, l.now()))
	l.observe(operationUpdateBook, statusSuccess, start)

	return true, nil
}

// TotalBooks returns the number of books in the catalog, lent out or not.
func (l *Library) TotalBooks() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.books)
}

/***** Registry *****/

// RegisterUser adds a copy of the user to the registry; false if the ID is already there.
// Read the registered user back with GetUser.
func (l *Library) RegisterUser(user *User) bool {
	start := time.Now()

	if user == nil {
		l.observe(operationRegisterUser, statusRejected, start)
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.users[user.id]; exists {
		l.observe(operationRegisterUser, statusRejected, start)
		return false
	}

	l.users[user.id] = user.clone()
	l.userIDs = append(l.userIDs, user.id)

	l.logInfo(logMsgUserRegistered, logAttrUserID, user.id)
	l.record(core.BuildUserRegistered(user.id, user.name, l.now()))
	l.observe(operationRegisterUser, statusSuccess, start)

	return true
}

// GetUser returns the registered user with the ID, or false if there is none.
func (l *Library) GetUser(id string) (*User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	user, ok := l.users[id]

	return user, ok
}

// RemoveUser removes a user from the registry; false if the user is absent or still holds books.
func (l *Library) RemoveUser(id string) bool {
	start := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.users[id]
	if !ok || user.BorrowedCount() > 0 {
		l.observe(operationRemoveUser, statusRejected, start)
		return false
	}

	delete(l.users, id)
	l.userIDs = deleteKey(l.userIDs, id)

	l.logInfo(logMsgUserRemoved, logAttrUserID, id)
	l.record(core.BuildUserRemoved(id, l.now()))
	l.observe(operationRemoveUser, statusSuccess, start)

	return true
}

// TotalUsers returns the number of registered users.
func (l *Library) TotalUsers() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.users)
}

func deleteKey(keys []string, key string) []string {
	return slices.DeleteFunc(keys, func(k string) bool { return k == key })
}
