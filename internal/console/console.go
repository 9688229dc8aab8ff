// Package console implements the interactive text menu over the lending
// operations. It is strictly single-user: one blocking read-dispatch loop
// over standard input.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/library"
)

// Console is the menu loop. Input and output are injected so tests can drive
// the loop with scripted sessions.
type Console struct {
	service *library.Service
	in      *bufio.Scanner
	out     io.Writer
}

func New(service *library.Service, in io.Reader, out io.Writer) *Console {
	return &Console{
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run prints the menu, dispatches one choice at a time and loops until the
// exit option is chosen or input ends.
func (c *Console) Run() {
	for {
		c.printMenu()
		choice, ok := c.readLine()
		if !ok {
			return
		}
		if !c.dispatch(choice) {
			return
		}
	}
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Choose an action:")
	fmt.Fprintln(c.out, "1. Add a book")
	fmt.Fprintln(c.out, "2. Add a reader")
	fmt.Fprintln(c.out, "3. Borrow a book")
	fmt.Fprintln(c.out, "4. Update book details")
	fmt.Fprintln(c.out, "5. Delete a book")
	fmt.Fprintln(c.out, "6. Delete a reader")
	fmt.Fprintln(c.out, "7. List all books")
	fmt.Fprintln(c.out, "8. List borrowed books")
	fmt.Fprintln(c.out, "9. Show book loan duration")
	fmt.Fprintln(c.out, "10. Show reader borrow history")
	fmt.Fprintln(c.out, "11. Exit")
	fmt.Fprint(c.out, "Choice: ")
}

// dispatch runs one menu action. Returns false only for the exit option.
func (c *Console) dispatch(choice string) bool {
	switch choice {
	case "1":
		c.addBook()
	case "2":
		c.addReader()
	case "3":
		c.borrowBook()
	case "4":
		c.updateBook()
	case "5":
		c.deleteBook()
	case "6":
		c.deleteReader()
	case "7":
		c.listBooks()
	case "8":
		c.listBorrowedBooks()
	case "9":
		c.loanDuration()
	case "10":
		c.readerHistory()
	case "11":
		return false
	default:
		fmt.Fprintln(c.out, "Invalid choice!")
	}
	return true
}

func (c *Console) addBook() {
	title, ok := c.prompt("Book title: ")
	if !ok {
		return
	}
	author, ok := c.prompt("Author: ")
	if !ok {
		return
	}
	year, ok := c.promptInt("Year: ")
	if !ok {
		return
	}

	book, err := c.service.AddBook(title, author, year)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateTitle) {
			fmt.Fprintln(c.out, "A book with this title already exists.")
		} else {
			fmt.Fprintf(c.out, "Failed to add book: %v\n", err)
		}
		return
	}
	fmt.Fprintf(c.out, "Book %q added with ID %d.\n", book.Title, book.ID)
}

func (c *Console) addReader() {
	name, ok := c.prompt("Reader name: ")
	if !ok {
		return
	}
	email, ok := c.prompt("Reader email: ")
	if !ok {
		return
	}

	reader, err := c.service.AddReader(name, email)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			fmt.Fprintln(c.out, "A reader with this email already exists.")
		} else {
			fmt.Fprintf(c.out, "Failed to add reader: %v\n", err)
		}
		return
	}
	fmt.Fprintf(c.out, "Reader %q added with ID %d.\n", reader.Name, reader.ID)
}

func (c *Console) borrowBook() {
	bookID, ok := c.promptID("Book ID: ")
	if !ok {
		return
	}
	readerID, ok := c.promptID("Reader ID: ")
	if !ok {
		return
	}

	record, err := c.service.BorrowBook(bookID, readerID)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Book ID %d lent to reader ID %d, due back %s.\n",
			record.BookID, record.ReaderID, record.ReturnDueDate.Format("2006-01-02"))
	case errors.Is(err, database.ErrBookNotFound), errors.Is(err, database.ErrBookUnavailable):
		fmt.Fprintln(c.out, "Book is not available.")
	case errors.Is(err, database.ErrReaderNotFound):
		fmt.Fprintln(c.out, "Reader not found.")
	default:
		fmt.Fprintf(c.out, "Failed to borrow book: %v\n", err)
	}
}

func (c *Console) updateBook() {
	bookID, ok := c.promptID("Book ID: ")
	if !ok {
		return
	}
	newTitle, ok := c.prompt("New title (leave empty to keep): ")
	if !ok {
		return
	}
	newAuthor, ok := c.prompt("New author (leave empty to keep): ")
	if !ok {
		return
	}

	book, err := c.service.UpdateBook(bookID, newTitle, newAuthor)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Book %d updated.\n", book.ID)
	case errors.Is(err, database.ErrBookNotFound):
		fmt.Fprintln(c.out, "Book not found.")
	case errors.Is(err, database.ErrDuplicateTitle):
		fmt.Fprintln(c.out, "A book with this title already exists.")
	default:
		fmt.Fprintf(c.out, "Failed to update book: %v\n", err)
	}
}

func (c *Console) deleteBook() {
	bookID, ok := c.promptID("Book ID: ")
	if !ok {
		return
	}

	err := c.service.DeleteBook(bookID)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Book %d deleted.\n", bookID)
	case errors.Is(err, database.ErrBookNotFound):
		fmt.Fprintln(c.out, "Book not found.")
	default:
		fmt.Fprintf(c.out, "Failed to delete book: %v\n", err)
	}
}

func (c *Console) deleteReader() {
	readerID, ok := c.promptID("Reader ID: ")
	if !ok {
		return
	}

	err := c.service.DeleteReader(readerID)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Reader %d deleted.\n", readerID)
	case errors.Is(err, database.ErrReaderNotFound):
		fmt.Fprintln(c.out, "Reader not found.")
	default:
		fmt.Fprintf(c.out, "Failed to delete reader: %v\n", err)
	}
}

func (c *Console) listBooks() {
	books, err := c.service.ListBooks()
	if err != nil {
		fmt.Fprintf(c.out, "Failed to list books: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Fprintln(c.out, "No books in the library.")
		return
	}
	for _, book := range books {
		status := "available"
		if !book.Available {
			status = "borrowed"
		}
		fmt.Fprintf(c.out, "%d. %s - %s\n", book.ID, book.Title, status)
	}
}

func (c *Console) listBorrowedBooks() {
	records, err := c.service.ListBorrowedBooks()
	if err != nil {
		fmt.Fprintf(c.out, "Failed to list borrow records: %v\n", err)
		return
	}
	for _, record := range records {
		fmt.Fprintf(c.out, "Book ID %d lent to reader ID %d, due back %s\n",
			record.BookID, record.ReaderID, record.ReturnDueDate.Format("2006-01-02"))
	}
}

func (c *Console) loanDuration() {
	bookID, ok := c.promptID("Book ID: ")
	if !ok {
		return
	}

	days, err := c.service.BookLoanDuration(bookID)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Book has been out on loan for %d days.\n", days)
	case errors.Is(err, database.ErrLoanNotFound):
		fmt.Fprintln(c.out, "This book was never borrowed.")
	default:
		fmt.Fprintf(c.out, "Failed to compute loan duration: %v\n", err)
	}
}

func (c *Console) readerHistory() {
	readerID, ok := c.promptID("Reader ID: ")
	if !ok {
		return
	}

	records, err := c.service.ReaderBorrowHistory(readerID)
	if err != nil {
		fmt.Fprintf(c.out, "Failed to load borrow history: %v\n", err)
		return
	}
	if len(records) == 0 {
		fmt.Fprintln(c.out, "This reader has no borrowed books.")
		return
	}
	for _, record := range records {
		fmt.Fprintf(c.out, "Book ID %d borrowed %s, due back %s\n",
			record.BookID,
			record.BorrowedAt.Format("2006-01-02"),
			record.ReturnDueDate.Format("2006-01-02"))
	}
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	return c.readLine()
}

// promptInt parses a whole number at the boundary. A malformed value prints
// an error and cancels the current action instead of reaching storage.
func (c *Console) promptInt(label string) (int, bool) {
	line, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintln(c.out, "Not a number.")
		return 0, false
	}
	return n, true
}

func (c *Console) promptID(label string) (uint, bool) {
	line, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimSpace(line), 10, 32)
	if err != nil {
		fmt.Fprintln(c.out, "Not a valid ID.")
		return 0, false
	}
	return uint(id), true
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
