// Package core contains the domain events of the library:
// books entering and leaving the catalog, users joining and leaving the registry,
// and books being lent to and returned by users.
//
// The events describe meaningful business occurrences (BookLentToUser, BookReturnedByUser)
// rather than generic create/update operations. The library façade emits one event per
// state change, and one LendingBookToUserFailed event per rejected loan request.
//
// All events implement DomainEvent.
package core
