package library

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *database.Database, func()) {
	t.Helper()

	dbPath := "./test_library_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	service := NewService(db, 14)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return service, db, cleanup
}

// The end-to-end lending scenario: add, borrow, duplicate rejection.
func TestService_LendingScenario(t *testing.T) {
	service, db, cleanup := setupTestService(t)
	defer cleanup()

	book, err := service.AddBook("Testas", "Autorius", 2000)
	require.NoError(t, err)
	assert.True(t, book.Available)

	reader, err := service.AddReader("Jonas", "j@x.lt")
	require.NoError(t, err)

	record, err := service.BorrowBook(book.ID, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, record.BookID)
	assert.Equal(t, reader.ID, record.ReaderID)
	assert.Equal(t, record.BorrowedAt.Add(14*24*time.Hour), record.ReturnDueDate)

	borrowed, err := service.GetBook(book.ID)
	require.NoError(t, err)
	assert.False(t, borrowed.Available)

	// Duplicate title is rejected; the original row stays intact
	_, err = service.AddBook("Testas", "Kitas", 2001)
	assert.ErrorIs(t, err, database.ErrDuplicateTitle)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Where("title = ?", "Testas").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	original, err := service.GetBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Autorius", original.Author)
}

func TestService_ListBooks(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.AddBook("Testas", "Autorius", 2000)
	require.NoError(t, err)

	books, err := service.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Testas", books[0].Title)
	assert.Equal(t, "Autorius", books[0].Author)
	assert.Equal(t, 2000, books[0].YearPublished)
	assert.True(t, books[0].Available)
}

func TestService_BorrowBook_Unavailable(t *testing.T) {
	service, db, cleanup := setupTestService(t)
	defer cleanup()

	book, err := service.AddBook("Testas", "Autorius", 2000)
	require.NoError(t, err)
	reader, err := service.AddReader("Jonas", "j@x.lt")
	require.NoError(t, err)

	_, err = service.BorrowBook(book.ID, reader.ID)
	require.NoError(t, err)

	_, err = service.BorrowBook(book.ID, reader.ID)
	assert.ErrorIs(t, err, database.ErrBookUnavailable)

	_, err = service.BorrowBook(999, reader.ID)
	assert.ErrorIs(t, err, database.ErrBookNotFound)

	var count int64
	require.NoError(t, db.DB.Model(&entities.BorrowRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestService_ReturnBook(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	book, err := service.AddBook("Testas", "Autorius", 2000)
	require.NoError(t, err)
	reader, err := service.AddReader("Jonas", "j@x.lt")
	require.NoError(t, err)

	_, err = service.BorrowBook(book.ID, reader.ID)
	require.NoError(t, err)

	returned, err := service.ReturnBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, returned.BookID)

	reloaded, err := service.GetBook(book.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Available)

	// No second open loan to return
	_, err = service.ReturnBook(book.ID)
	assert.ErrorIs(t, err, database.ErrLoanNotFound)
}

func TestService_UpdateBook_PartialUpdate(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	book, err := service.AddBook("Testas", "Autorius", 2000)
	require.NoError(t, err)

	_, err = service.UpdateBook(book.ID, "", "X")
	require.NoError(t, err)

	reloaded, err := service.GetBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Testas", reloaded.Title)
	assert.Equal(t, "X", reloaded.Author)
}

func TestService_DeleteBook_RemovesBorrowRecords(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	book, err := service.AddBook("Testas", "Autorius", 2000)
	require.NoError(t, err)
	reader, err := service.AddReader("Jonas", "j@x.lt")
	require.NoError(t, err)
	_, err = service.BorrowBook(book.ID, reader.ID)
	require.NoError(t, err)

	require.NoError(t, service.DeleteBook(book.ID))

	records, err := service.ListBorrowedBooks()
	require.NoError(t, err)
	for _, record := range records {
		assert.NotEqual(t, book.ID, record.BookID)
	}
	assert.Empty(t, records)
}

func TestService_DeleteReader_RemovesBorrowRecords(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	book, err := service.AddBook("Testas", "Autorius", 2000)
	require.NoError(t, err)
	reader, err := service.AddReader("Jonas", "j@x.lt")
	require.NoError(t, err)
	_, err = service.BorrowBook(book.ID, reader.ID)
	require.NoError(t, err)

	require.NoError(t, service.DeleteReader(reader.ID))

	records, err := service.ListBorrowedBooks()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestService_BookLoanDuration(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	book, err := service.AddBook("Testas", "Autorius", 2000)
	require.NoError(t, err)

	_, err = service.BookLoanDuration(book.ID)
	assert.ErrorIs(t, err, database.ErrLoanNotFound)

	reader, err := service.AddReader("Jonas", "j@x.lt")
	require.NoError(t, err)
	_, err = service.BorrowBook(book.ID, reader.ID)
	require.NoError(t, err)

	days, err := service.BookLoanDuration(book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, days)
}

func TestService_ReaderBorrowHistory(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	reader, err := service.AddReader("Jonas", "j@x.lt")
	require.NoError(t, err)

	history, err := service.ReaderBorrowHistory(reader.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	first, err := service.AddBook("Pirma", "A", 2000)
	require.NoError(t, err)
	second, err := service.AddBook("Antra", "B", 2001)
	require.NoError(t, err)

	_, err = service.BorrowBook(first.ID, reader.ID)
	require.NoError(t, err)
	_, err = service.BorrowBook(second.ID, reader.ID)
	require.NoError(t, err)

	history, err = service.ReaderBorrowHistory(reader.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].BookID)
	assert.Equal(t, second.ID, history[1].BookID)
}

func TestService_AddReader_DuplicateEmail(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.AddReader("Jonas", "j@x.lt")
	require.NoError(t, err)

	_, err = service.AddReader("Ona", "j@x.lt")
	assert.ErrorIs(t, err, database.ErrDuplicateEmail)
}
