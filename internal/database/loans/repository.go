// Package loans provides database operations for borrow records.
//
// Borrow and Return each run inside a single transaction so that the
// availability flip and the borrow-record write commit or roll back together.
package loans

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/entities"
)

// Repository handles all borrow-record database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Borrow lends a book to a reader. It validates inside the transaction that
// the book exists and is available and that the reader exists, then flips the
// book to unavailable and creates the borrow record. Timestamps are computed
// here, at row-creation time, so every loan gets its own clock reading.
func (r *Repository) Borrow(bookID, readerID uint, period time.Duration) (*entities.BorrowRecord, error) {
	var record entities.BorrowRecord
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if database.IsNotFound(err) {
				return database.ErrBookNotFound
			}
			return err
		}
		if !book.Available {
			return database.ErrBookUnavailable
		}

		var reader entities.Reader
		if err := tx.First(&reader, readerID).Error; err != nil {
			if database.IsNotFound(err) {
				return database.ErrReaderNotFound
			}
			return err
		}

		if err := tx.Model(&book).Update("available", false).Error; err != nil {
			return err
		}

		now := time.Now()
		record = entities.BorrowRecord{
			BookID:        book.ID,
			ReaderID:      reader.ID,
			BorrowedAt:    now,
			ReturnDueDate: now.Add(period),
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Return closes the active loan for a book and makes the book available
// again. ErrLoanNotFound is returned when the book has no open loan.
func (r *Repository) Return(bookID uint) (*entities.BorrowRecord, error) {
	var record entities.BorrowRecord
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("book_id = ? AND returned_at IS NULL", bookID).First(&record).Error
		if err != nil {
			if database.IsNotFound(err) {
				return database.ErrLoanNotFound
			}
			return err
		}

		now := time.Now()
		if err := tx.Model(&record).Update("returned_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Book{}).Where("id = ?", bookID).Update("available", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetAll retrieves every borrow record with its book and reader preloaded.
func (r *Repository) GetAll() ([]entities.BorrowRecord, error) {
	var records []entities.BorrowRecord
	err := r.db.Preload("Book").Preload("Reader").Find(&records).Error
	return records, err
}

// ForReader retrieves the full borrow history of one reader, oldest first.
func (r *Repository) ForReader(readerID uint) ([]entities.BorrowRecord, error) {
	var records []entities.BorrowRecord
	err := r.db.Preload("Book").
		Where("reader_id = ?", readerID).
		Order("borrowed_at ASC").
		Find(&records).Error
	return records, err
}

// LatestForBook returns the loan that best describes a book's lending state:
// the active loan when one exists, otherwise the most recent closed one.
func (r *Repository) LatestForBook(bookID uint) (*entities.BorrowRecord, error) {
	var record entities.BorrowRecord
	err := r.db.Where("book_id = ? AND returned_at IS NULL", bookID).First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	err = r.db.Where("book_id = ?", bookID).Order("borrowed_at DESC").First(&record).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, database.ErrLoanNotFound
		}
		return nil, err
	}
	return &record, nil
}

// DueWithin retrieves open loans whose due date falls before the cutoff.
// Used by the overdue scan (cutoff = now) and due reminders (cutoff = now+N).
func (r *Repository) DueWithin(cutoff time.Time) ([]entities.BorrowRecord, error) {
	var records []entities.BorrowRecord
	err := r.db.Preload("Book").Preload("Reader").
		Where("returned_at IS NULL AND return_due_date <= ?", cutoff).
		Order("return_due_date ASC").
		Find(&records).Error
	return records, err
}

// GetByID retrieves one borrow record.
func (r *Repository) GetByID(id uint) (*entities.BorrowRecord, error) {
	var record entities.BorrowRecord
	if err := r.db.Preload("Book").Preload("Reader").First(&record, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, database.ErrLoanNotFound
		}
		return nil, err
	}
	return &record, nil
}
