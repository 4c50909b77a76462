// Package library is an in-memory library-management domain model: a catalog of books,
// a registry of users, and the loans between them.
//
// Callers work through the Library façade. It enforces the lending rules:
//   - a book can be on at most one active loan
//   - a user can hold at most MaxBorrowedBooks active loans
//   - a loan is due LoanPeriod after it was created
//
// Book and User expose read-only accessors; their loan-affecting state changes only
// through Library.CreateLoan and Library.ReturnLoan, so the catalog, the registry,
// and the loans can never drift apart.
//
// Time-sensitive operations take an explicit timestamp or use the clock configured
// with WithClock. A zero timestamp means "now".
//
// With WithEventStore, the façade records a domain event (see package core) for every
// state change and for every rejected loan request. The in-memory state stays the
// source of truth: a failing journal is logged, never surfaced to the caller.
package library
