// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.Create("Balta drobulė", "Antanas Škėma", 1958)
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book, available by default. A duplicate title is
// rejected by the unique index and reported as ErrDuplicateTitle; the failed
// insert leaves no partial row behind.
func (r *Repository) Create(title, author string, year int) (*entities.Book, error) {
	book := &entities.Book{
		Title:         title,
		Author:        author,
		YearPublished: year,
		Available:     true,
	}
	if err := r.db.Create(book).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, database.ErrDuplicateTitle
		}
		return nil, err
	}
	return book, nil
}

// GetByID retrieves a book by its identifier.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, database.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetAll retrieves every book in storage order.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Find(&books).Error
	return books, err
}

// GetAvailable retrieves the books currently not out on loan.
func (r *Repository) GetAvailable() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("available = ?", true).Find(&books).Error
	return books, err
}

// Update applies a partial update: an empty newTitle or newAuthor leaves the
// corresponding column unchanged. Renaming onto an existing title is rejected
// as ErrDuplicateTitle.
func (r *Repository) Update(id uint, newTitle, newAuthor string) (*entities.Book, error) {
	book, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if newTitle != "" {
		updates["title"] = newTitle
	}
	if newAuthor != "" {
		updates["author"] = newAuthor
	}
	if len(updates) == 0 {
		return book, nil
	}

	if err := r.db.Model(book).Updates(updates).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, database.ErrDuplicateTitle
		}
		return nil, err
	}
	return book, nil
}

// Delete removes a book together with every borrow record referencing it, so
// no orphaned foreign keys remain.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if database.IsNotFound(err) {
				return database.ErrBookNotFound
			}
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.BorrowRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&book).Error
	})
}
