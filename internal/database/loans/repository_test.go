package loans

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/entities"
)

const loanPeriod = 14 * 24 * time.Hour

func setupTestDB(t *testing.T) (*Repository, *database.Database, func()) {
	t.Helper()

	dbPath := "./test_loans_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func createBook(t *testing.T, db *database.Database, title string) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, Author: "Autorius", YearPublished: 2000, Available: true}
	require.NoError(t, db.DB.Create(book).Error)
	return book
}

func createReader(t *testing.T, db *database.Database, email string) *entities.Reader {
	t.Helper()
	reader := &entities.Reader{Name: "Jonas", Email: email}
	require.NoError(t, db.DB.Create(reader).Error)
	return reader
}

func TestRepository_Borrow(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := createBook(t, db, "Testas")
	reader := createReader(t, db, "jonas@example.lt")

	record, err := repo.Borrow(book.ID, reader.ID, loanPeriod)
	require.NoError(t, err)

	assert.Equal(t, book.ID, record.BookID)
	assert.Equal(t, reader.ID, record.ReaderID)
	assert.Nil(t, record.ReturnedAt)
	assert.Equal(t, record.BorrowedAt.Add(loanPeriod), record.ReturnDueDate)

	// Book must be unavailable now
	var reloaded entities.Book
	require.NoError(t, db.DB.First(&reloaded, book.ID).Error)
	assert.False(t, reloaded.Available)

	var count int64
	require.NoError(t, db.DB.Model(&entities.BorrowRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Borrow_BookUnavailable(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := createBook(t, db, "Testas")
	reader := createReader(t, db, "jonas@example.lt")

	_, err := repo.Borrow(book.ID, reader.ID, loanPeriod)
	require.NoError(t, err)

	// Second borrow of the same book is rejected with no new record
	_, err = repo.Borrow(book.ID, reader.ID, loanPeriod)
	assert.ErrorIs(t, err, database.ErrBookUnavailable)

	var count int64
	require.NoError(t, db.DB.Model(&entities.BorrowRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Borrow_BookNotFound(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	reader := createReader(t, db, "jonas@example.lt")

	_, err := repo.Borrow(99, reader.ID, loanPeriod)
	assert.ErrorIs(t, err, database.ErrBookNotFound)

	var count int64
	require.NoError(t, db.DB.Model(&entities.BorrowRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRepository_Borrow_ReaderNotFound(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := createBook(t, db, "Testas")

	_, err := repo.Borrow(book.ID, 99, loanPeriod)
	assert.ErrorIs(t, err, database.ErrReaderNotFound)

	// Rejection must leave the book untouched
	var reloaded entities.Book
	require.NoError(t, db.DB.First(&reloaded, book.ID).Error)
	assert.True(t, reloaded.Available)

	var count int64
	require.NoError(t, db.DB.Model(&entities.BorrowRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRepository_Return(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := createBook(t, db, "Testas")
	reader := createReader(t, db, "jonas@example.lt")

	_, err := repo.Borrow(book.ID, reader.ID, loanPeriod)
	require.NoError(t, err)

	record, err := repo.Return(book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, record.BookID)

	var reloadedBook entities.Book
	require.NoError(t, db.DB.First(&reloadedBook, book.ID).Error)
	assert.True(t, reloadedBook.Available)

	var reloadedRecord entities.BorrowRecord
	require.NoError(t, db.DB.First(&reloadedRecord, record.ID).Error)
	assert.NotNil(t, reloadedRecord.ReturnedAt)
}

func TestRepository_Return_NoOpenLoan(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := createBook(t, db, "Testas")

	_, err := repo.Return(book.ID)
	assert.ErrorIs(t, err, database.ErrLoanNotFound)
}

func TestRepository_Return_MakesBookBorrowableAgain(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := createBook(t, db, "Testas")
	reader := createReader(t, db, "jonas@example.lt")

	_, err := repo.Borrow(book.ID, reader.ID, loanPeriod)
	require.NoError(t, err)
	_, err = repo.Return(book.ID)
	require.NoError(t, err)

	_, err = repo.Borrow(book.ID, reader.ID, loanPeriod)
	require.NoError(t, err)

	records, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRepository_ForReader(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	first := createBook(t, db, "Pirma")
	second := createBook(t, db, "Antra")
	reader := createReader(t, db, "jonas@example.lt")
	other := createReader(t, db, "ona@example.lt")

	_, err := repo.Borrow(first.ID, reader.ID, loanPeriod)
	require.NoError(t, err)
	_, err = repo.Borrow(second.ID, other.ID, loanPeriod)
	require.NoError(t, err)

	records, err := repo.ForReader(reader.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, first.ID, records[0].BookID)

	empty, err := repo.ForReader(99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_LatestForBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := createBook(t, db, "Testas")
	reader := createReader(t, db, "jonas@example.lt")

	_, err := repo.LatestForBook(book.ID)
	assert.ErrorIs(t, err, database.ErrLoanNotFound)

	first, err := repo.Borrow(book.ID, reader.ID, loanPeriod)
	require.NoError(t, err)

	active, err := repo.LatestForBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	// After a return the closed loan still describes the book's last lending
	_, err = repo.Return(book.ID)
	require.NoError(t, err)

	latest, err := repo.LatestForBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
	assert.NotNil(t, latest.ReturnedAt)
}

func TestRepository_DueWithin(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	overdueBook := createBook(t, db, "Pavėluota")
	currentBook := createBook(t, db, "Laiku")
	reader := createReader(t, db, "jonas@example.lt")

	// One loan already past its due date, one with two weeks left
	_, err := repo.Borrow(overdueBook.ID, reader.ID, -time.Hour)
	require.NoError(t, err)
	_, err = repo.Borrow(currentBook.ID, reader.ID, loanPeriod)
	require.NoError(t, err)

	records, err := repo.DueWithin(time.Now())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, overdueBook.ID, records[0].BookID)
	assert.Equal(t, "Pavėluota", records[0].Book.Title)
}

func TestRepository_GetByID(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := createBook(t, db, "Testas")
	reader := createReader(t, db, "jonas@example.lt")

	created, err := repo.Borrow(book.ID, reader.ID, loanPeriod)
	require.NoError(t, err)

	record, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Testas", record.Book.Title)
	assert.Equal(t, "Jonas", record.Reader.Name)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, database.ErrLoanNotFound)
}
