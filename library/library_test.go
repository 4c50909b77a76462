package library_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library"
	"github.com/AntonStoeckl/library-lending-go/testutil/helper"
)

var fakeNow = time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC)

func givenLibrary(t require.TestingT, opts ...library.Option) *library.Library {
	lib, err := library.New(append([]library.Option{library.WithClock(helper.NewClock(fakeNow).Now)}, opts...)...)
	require.NoError(t, err, "error in arranging test data")

	return lib
}

func givenBook(t require.TestingT, isbn, title, author string) *library.Book {
	book, err := library.NewBook(isbn, title, author)
	require.NoError(t, err, "error in arranging test data")

	return book
}

func givenUser(t require.TestingT, id, name string) *library.User {
	user, err := library.NewUser(id, name)
	require.NoError(t, err, "error in arranging test data")

	return user
}

// givenCatalog adds one book per ISBN, titled and authored after the ISBN.
func givenCatalog(t require.TestingT, lib *library.Library, isbns ...string) {
	for _, isbn := range isbns {
		require.True(t, lib.AddBook(givenBook(t, isbn, "Title "+isbn, "Author "+isbn)), "error in arranging test data")
	}
}

// givenRegisteredUser returns the registry's copy of the user, which reflects later lending.
func givenRegisteredUser(t require.TestingT, lib *library.Library, id string) *library.User {
	require.True(t, lib.RegisterUser(givenUser(t, id, "Name "+id)), "error in arranging test data")

	user, found := lib.GetUser(id)
	require.True(t, found, "error in arranging test data")

	return user
}

// givenScenarioLibrary builds the catalog ISBN1 (Clean Code), ISBN2 (Design Patterns) and the users U001, U002.
func givenScenarioLibrary(t require.TestingT, opts ...library.Option) *library.Library {
	lib := givenLibrary(t, opts...)
	require.True(t, lib.AddBook(givenBook(t, "ISBN1", "Clean Code", "Robert Martin")))
	require.True(t, lib.AddBook(givenBook(t, "ISBN2", "Design Patterns", "Gang of Four")))
	givenRegisteredUser(t, lib, "U001")
	givenRegisteredUser(t, lib, "U002")

	return lib
}

func isbnsOf(books []*library.Book) []string {
	isbns := make([]string, 0, len(books))
	for _, book := range books {
		isbns = append(isbns, book.ISBN())
	}

	return isbns
}

func Test_New_RejectsNilOptions(t *testing.T) {
	_, err := library.New(library.WithClock(nil))
	assert.ErrorIs(t, err, library.ErrNilClock)

	_, err = library.New(library.WithLogger(nil))
	assert.ErrorIs(t, err, library.ErrNilLogger)

	_, err = library.New(library.WithMetrics(nil))
	assert.ErrorIs(t, err, library.ErrNilMetricsCollector)

	_, err = library.New(library.WithEventStore(nil))
	assert.ErrorIs(t, err, library.ErrNilEventStore)

	_, err = library.New(library.WithLoanIDGenerator(nil))
	assert.ErrorIs(t, err, library.ErrNilLoanIDGenerator)
}

func Test_New_IsEmpty(t *testing.T) {
	lib, err := library.New()

	require.NoError(t, err)
	assert.Equal(t, 0, lib.TotalBooks())
	assert.Equal(t, 0, lib.TotalUsers())
	assert.Equal(t, 0, lib.TotalActiveLoans())
	assert.Empty(t, lib.SearchBooks())
	assert.Empty(t, lib.ListActiveLoans())
}

func Test_AddBook_DuplicateISBN_ReturnsFalse(t *testing.T) {
	// arrange
	lib := givenLibrary(t)
	original := givenBook(t, "ISBN1", "Clean Code", "Robert Martin")
	require.True(t, lib.AddBook(original))

	// act
	added := lib.AddBook(givenBook(t, "ISBN1", "Other", "Other"))

	// assert
	assert.False(t, added)
	assert.Equal(t, 1, lib.TotalBooks())
	book, found := lib.GetBook("ISBN1")
	assert.True(t, found)
	assert.Equal(t, original.Title(), book.Title())
}

func Test_AddBook_StoresACopy(t *testing.T) {
	// arrange
	shared := givenBook(t, "X", "Clean Code", "Robert Martin")
	lender := givenLibrary(t)
	other := givenLibrary(t)
	require.True(t, lender.AddBook(shared))
	require.True(t, other.AddBook(shared))
	givenRegisteredUser(t, lender, "U001")
	givenRegisteredUser(t, other, "U001")

	// act
	_, err := lender.CreateLoan("X", "U001")

	// assert
	require.NoError(t, err)
	assert.True(t, shared.Available(), "the caller's book is not the catalog entry")

	book, _ := other.GetBook("X")
	assert.True(t, book.Available())
	assert.Equal(t, 0, other.TotalActiveLoans())

	_, err = other.CreateLoan("X", "U001")
	assert.NoError(t, err)
}

func Test_RegisterUser_StoresACopy(t *testing.T) {
	// arrange
	shared := givenUser(t, "U001", "Ana")
	lender := givenLibrary(t)
	other := givenLibrary(t)
	givenCatalog(t, lender, "ISBN1")
	givenCatalog(t, other, "ISBN1")
	require.True(t, lender.RegisterUser(shared))
	require.True(t, other.RegisterUser(shared))

	// act
	_, err := lender.CreateLoan("ISBN1", "U001")

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, shared.BorrowedCount())

	user, _ := other.GetUser("U001")
	assert.Equal(t, 0, user.BorrowedCount())
	assert.True(t, other.RemoveUser("U001"))
}

func Test_AddBook_Nil_ReturnsFalse(t *testing.T) {
	lib := givenLibrary(t)

	assert.False(t, lib.AddBook(nil))
	assert.False(t, lib.RegisterUser(nil))
}

func Test_GetBook_Absent(t *testing.T) {
	lib := givenLibrary(t)

	book, found := lib.GetBook("missing")

	assert.False(t, found)
	assert.Nil(t, book)
}

func Test_RemoveBook(t *testing.T) {
	// arrange
	lib := givenScenarioLibrary(t)

	// act
	removed := lib.RemoveBook("ISBN2")

	// assert
	assert.True(t, removed)
	assert.Equal(t, 1, lib.TotalBooks())
	_, found := lib.GetBook("ISBN2")
	assert.False(t, found)
	assert.False(t, lib.RemoveBook("ISBN2"), "removing twice")
}

func Test_RemoveBook_WhileLent_ReturnsFalse(t *testing.T) {
	// arrange
	lib := givenScenarioLibrary(t)
	_, err := lib.CreateLoan("ISBN1", "U002")
	require.NoError(t, err)

	// act
	removed := lib.RemoveBook("ISBN1")

	// assert
	assert.False(t, removed)
	assert.Equal(t, 2, lib.TotalBooks())
}

func Test_RemoveBook_ThenAddAgain_MovesItToTheEndOfTheCatalog(t *testing.T) {
	lib := givenLibrary(t)
	givenCatalog(t, lib, "ISBN1", "ISBN2", "ISBN3")

	require.True(t, lib.RemoveBook("ISBN1"))
	givenCatalog(t, lib, "ISBN1")

	assert.Equal(t, []string{"ISBN2", "ISBN3", "ISBN1"}, isbnsOf(lib.SearchBooks()))
}

func Test_UpdateBook(t *testing.T) {
	// arrange
	lib := givenScenarioLibrary(t)

	// act
	updated, err := lib.UpdateBook("ISBN1", library.WithTitle("Clean Code (2nd ed.)"), library.WithAuthor("Robert C. Martin"))

	// assert
	require.NoError(t, err)
	assert.True(t, updated)
	book, _ := lib.GetBook("ISBN1")
	assert.Equal(t, "Clean Code (2nd ed.)", book.Title())
	assert.Equal(t, "Robert C. Martin", book.Author())
	assert.True(t, book.Available())
}

func Test_UpdateBook_Absent_ReturnsFalse(t *testing.T) {
	lib := givenScenarioLibrary(t)

	updated, err := lib.UpdateBook("missing", library.WithTitle("x"))

	assert.NoError(t, err)
	assert.False(t, updated)
}

func Test_UpdateBook_InvalidUpdate_ChangesNothing(t *testing.T) {
	// arrange
	lib := givenScenarioLibrary(t)

	// act
	updated, err := lib.UpdateBook("ISBN1", library.WithTitle("New Title"), library.WithAuthor(""))

	// assert
	assert.False(t, updated)
	assert.ErrorIs(t, err, library.ErrValidation)
	assert.ErrorIs(t, err, library.ErrEmptyAuthor)
	book, _ := lib.GetBook("ISBN1")
	assert.Equal(t, "Clean Code", book.Title())
	assert.Equal(t, "Robert Martin", book.Author())
}

func Test_SearchBooks(t *testing.T) {
	lib := givenLibrary(t)
	require.True(t, lib.AddBook(givenBook(t, "ISBN1", "Clean Code", "Robert Martin")))
	require.True(t, lib.AddBook(givenBook(t, "ISBN2", "Design Patterns", "Gang of Four")))
	require.True(t, lib.AddBook(givenBook(t, "ISBN3", "The Clean Coder", "Robert Martin")))
	require.True(t, lib.AddBook(givenBook(t, "ISBN4", "Refactoring", "Martin Fowler")))
	givenRegisteredUser(t, lib, "U001")
	_, err := lib.CreateLoan("ISBN3", "U001")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		criteria []library.SearchCriterion
		expected []string
	}{
		{"no criteria", nil, []string{"ISBN1", "ISBN2", "ISBN3", "ISBN4"}},
		{"title ignoring case", []library.SearchCriterion{library.TitleContains("CLEAN")}, []string{"ISBN1", "ISBN3"}},
		{"author substring", []library.SearchCriterion{library.AuthorContains("martin")}, []string{"ISBN1", "ISBN3", "ISBN4"}},
		{"available", []library.SearchCriterion{library.IsAvailable(true)}, []string{"ISBN1", "ISBN2", "ISBN4"}},
		{"unavailable", []library.SearchCriterion{library.IsAvailable(false)}, []string{"ISBN3"}},
		{
			"all criteria combined with AND",
			[]library.SearchCriterion{library.TitleContains("clean"), library.AuthorContains("Robert"), library.IsAvailable(true)},
			[]string{"ISBN1"},
		},
		{"no match", []library.SearchCriterion{library.TitleContains("Go")}, []string{}},
		{"empty substring matches all", []library.SearchCriterion{library.TitleContains("")}, []string{"ISBN1", "ISBN2", "ISBN3", "ISBN4"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, isbnsOf(lib.SearchBooks(tc.criteria...)))
		})
	}
}

func Test_RegisterUser_DuplicateID_ReturnsFalse(t *testing.T) {
	lib := givenLibrary(t)
	givenRegisteredUser(t, lib, "U001")

	registered := lib.RegisterUser(givenUser(t, "U001", "Someone Else"))

	assert.False(t, registered)
	assert.Equal(t, 1, lib.TotalUsers())
	user, found := lib.GetUser("U001")
	assert.True(t, found)
	assert.Equal(t, "Name U001", user.Name())
}

func Test_RemoveUser(t *testing.T) {
	lib := givenScenarioLibrary(t)

	assert.True(t, lib.RemoveUser("U002"))
	assert.False(t, lib.RemoveUser("U002"), "removing twice")
	assert.Equal(t, 1, lib.TotalUsers())
	_, found := lib.GetUser("U002")
	assert.False(t, found)
}

func Test_RemoveUser_WhileHoldingBooks_ReturnsFalse(t *testing.T) {
	// arrange
	lib := givenScenarioLibrary(t)
	loan, err := lib.CreateLoan("ISBN1", "U001")
	require.NoError(t, err)

	// act + assert
	assert.False(t, lib.RemoveUser("U001"))
	require.True(t, lib.ReturnLoan(loan.ID()))
	assert.True(t, lib.RemoveUser("U001"))
}
