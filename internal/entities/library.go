package entities

import (
	"time"
)

// Book is a single title in the catalog. Title is unique across the whole
// library; Available flips to false while the book is out on loan.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"uniqueIndex;size:150;not null" json:"title"`
	Author        string    `gorm:"size:100;not null" json:"author"`
	YearPublished int       `gorm:"not null" json:"year_published"`
	Available     bool      `gorm:"default:true" json:"available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Reader is a registered library member, identified by a unique email.
type Reader struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// BorrowRecord links a Book to the Reader who borrowed it. ReturnedAt stays
// nil while the loan is active; an unavailable book has exactly one record
// with a nil ReturnedAt.
type BorrowRecord struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	BookID        uint       `gorm:"index;not null" json:"book_id"`
	ReaderID      uint       `gorm:"index;not null" json:"reader_id"`
	BorrowedAt    time.Time  `json:"borrowed_at"`
	ReturnDueDate time.Time  `json:"return_due_date"`
	ReturnedAt    *time.Time `json:"returned_at,omitempty"`

	Book   Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Reader Reader `gorm:"foreignKey:ReaderID" json:"reader,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

func (Reader) TableName() string {
	return "readers"
}

func (BorrowRecord) TableName() string {
	return "borrowed_books"
}
