package database

import (
	"errors"

	"gorm.io/gorm"
)

// The three recoverable failure classes of the library. Every repository
// returns one of these (possibly wrapped) instead of raw gorm errors so that
// callers can branch with errors.Is.
var (
	ErrDuplicateTitle = errors.New("a book with this title already exists")
	ErrDuplicateEmail = errors.New("a reader with this email already exists")

	ErrBookNotFound   = errors.New("book not found")
	ErrReaderNotFound = errors.New("reader not found")
	ErrLoanNotFound   = errors.New("no borrow record found")

	ErrBookUnavailable = errors.New("book is not available")
)

// IsDuplicate reports whether err is a unique-constraint violation as
// translated by the gorm sqlite driver.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports whether err is a missing-row error from gorm.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
