// Package library implements the lending operations shared by the web and
// console shells. Every operation is stateless: it re-reads from the database
// through the repositories and holds no authoritative copies.
package library

import (
	"time"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/database/books"
	"github.com/mrlokans/library-tracker/internal/database/loans"
	"github.com/mrlokans/library-tracker/internal/database/readers"
	"github.com/mrlokans/library-tracker/internal/entities"
)

// Service is the single operation layer over the library schema. Both
// presentation shells go through it, so borrow validation (book exists and is
// available, reader exists) is identical everywhere.
type Service struct {
	books   *books.Repository
	readers *readers.Repository
	loans   *loans.Repository

	loanPeriod time.Duration
}

// NewService wires the repositories over an explicitly passed database
// handle. loanPeriodDays controls the due date assigned at borrow time.
func NewService(db *database.Database, loanPeriodDays int) *Service {
	return &Service{
		books:      books.NewRepository(db.DB),
		readers:    readers.NewRepository(db.DB),
		loans:      loans.NewRepository(db.DB),
		loanPeriod: time.Duration(loanPeriodDays) * 24 * time.Hour,
	}
}

// AddBook creates a book with available=true. Fails with ErrDuplicateTitle
// when the title is already taken.
func (s *Service) AddBook(title, author string, year int) (*entities.Book, error) {
	return s.books.Create(title, author, year)
}

// AddReader registers a reader. Fails with ErrDuplicateEmail when the email
// is already taken.
func (s *Service) AddReader(name, email string) (*entities.Reader, error) {
	return s.readers.Create(name, email)
}

// BorrowBook lends a book to a reader in one atomic step.
func (s *Service) BorrowBook(bookID, readerID uint) (*entities.BorrowRecord, error) {
	return s.loans.Borrow(bookID, readerID, s.loanPeriod)
}

// ReturnBook closes the active loan for a book and makes it available again.
func (s *Service) ReturnBook(bookID uint) (*entities.BorrowRecord, error) {
	return s.loans.Return(bookID)
}

// UpdateBook partially updates a book: empty fields are left unchanged.
func (s *Service) UpdateBook(id uint, newTitle, newAuthor string) (*entities.Book, error) {
	return s.books.Update(id, newTitle, newAuthor)
}

// DeleteBook removes a book and every borrow record referencing it.
func (s *Service) DeleteBook(id uint) error {
	return s.books.Delete(id)
}

// DeleteReader removes a reader and every borrow record referencing them.
func (s *Service) DeleteReader(id uint) error {
	return s.readers.Delete(id)
}

// GetBook retrieves one book by id.
func (s *Service) GetBook(id uint) (*entities.Book, error) {
	return s.books.GetByID(id)
}

// ListBooks returns every book in storage order.
func (s *Service) ListBooks() ([]entities.Book, error) {
	return s.books.GetAll()
}

// ListAvailableBooks returns the books that can currently be borrowed.
func (s *Service) ListAvailableBooks() ([]entities.Book, error) {
	return s.books.GetAvailable()
}

// ListReaders returns every registered reader.
func (s *Service) ListReaders() ([]entities.Reader, error) {
	return s.readers.GetAll()
}

// ListBorrowedBooks returns every borrow record.
func (s *Service) ListBorrowedBooks() ([]entities.BorrowRecord, error) {
	return s.loans.GetAll()
}

// BookLoanDuration reports the whole days elapsed since the book was
// borrowed, using the active loan when one exists and the most recent loan
// otherwise. ErrLoanNotFound means the book was never borrowed.
func (s *Service) BookLoanDuration(bookID uint) (int, error) {
	record, err := s.loans.LatestForBook(bookID)
	if err != nil {
		return 0, err
	}
	return int(time.Since(record.BorrowedAt).Hours() / 24), nil
}

// ReaderBorrowHistory returns the reader's borrow records, oldest first.
// An empty slice means the reader has no history.
func (s *Service) ReaderBorrowHistory(readerID uint) ([]entities.BorrowRecord, error) {
	return s.loans.ForReader(readerID)
}

// LoansDueWithin lists open loans due before now+window. A zero window means
// loans that are already overdue.
func (s *Service) LoansDueWithin(window time.Duration) ([]entities.BorrowRecord, error) {
	return s.loans.DueWithin(time.Now().Add(window))
}
