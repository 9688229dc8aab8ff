// Package readers provides database operations for library members.
package readers

import (
	"gorm.io/gorm"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/entities"
)

// Repository handles all reader database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new readers repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create registers a new reader. A duplicate email is rejected by the unique
// index and reported as ErrDuplicateEmail.
func (r *Repository) Create(name, email string) (*entities.Reader, error) {
	reader := &entities.Reader{
		Name:  name,
		Email: email,
	}
	if err := r.db.Create(reader).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, database.ErrDuplicateEmail
		}
		return nil, err
	}
	return reader, nil
}

// GetByID retrieves a reader by its identifier.
func (r *Repository) GetByID(id uint) (*entities.Reader, error) {
	var reader entities.Reader
	if err := r.db.First(&reader, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, database.ErrReaderNotFound
		}
		return nil, err
	}
	return &reader, nil
}

// GetAll retrieves every registered reader.
func (r *Repository) GetAll() ([]entities.Reader, error) {
	var readers []entities.Reader
	err := r.db.Find(&readers).Error
	return readers, err
}

// Delete removes a reader together with every borrow record referencing them.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var reader entities.Reader
		if err := tx.First(&reader, id).Error; err != nil {
			if database.IsNotFound(err) {
				return database.ErrReaderNotFound
			}
			return err
		}
		if err := tx.Where("reader_id = ?", id).Delete(&entities.BorrowRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&reader).Error
	})
}
