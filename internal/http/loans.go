package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-tracker/internal/library"
)

type LoansController struct {
	service   *library.Service
	reminders ReminderEnqueuer
}

func NewLoansController(service *library.Service, reminders ReminderEnqueuer) *LoansController {
	return &LoansController{
		service:   service,
		reminders: reminders,
	}
}

// BorrowedBooksPage renders every borrow record with its due date.
func (controller *LoansController) BorrowedBooksPage(c *gin.Context) {
	records, err := controller.service.ListBorrowedBooks()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading borrow records: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "borrowed", gin.H{
		"Records": records,
	})
}

// BorrowBookPage renders the borrow form with the currently available books
// and all registered readers.
func (controller *LoansController) BorrowBookPage(c *gin.Context) {
	controller.renderBorrowForm(c)
}

// BorrowBook handles the borrow form submission. A successful borrow
// redirects to the borrowed list; any failure (unknown book or reader, book
// already out) falls back to re-rendering the form.
func (controller *LoansController) BorrowBook(c *gin.Context) {
	bookID, errBook := strconv.ParseUint(c.PostForm("book_id"), 10, 32)
	readerID, errReader := strconv.ParseUint(c.PostForm("reader_id"), 10, 32)
	if errBook != nil || errReader != nil {
		controller.renderBorrowForm(c)
		return
	}

	record, err := controller.service.BorrowBook(uint(bookID), uint(readerID))
	if err != nil {
		log.Printf("Borrow of book %d by reader %d rejected: %v", bookID, readerID, err)
		controller.renderBorrowForm(c)
		return
	}

	if controller.reminders != nil {
		if err := controller.reminders.EnqueueDueReminder(c.Request.Context(), record.ID); err != nil {
			log.Printf("Failed to enqueue due reminder for loan %d: %v", record.ID, err)
		}
	}

	c.Redirect(http.StatusFound, "/view_borrowed_books")
}

// ReturnBook closes a loan from the borrowed list. The redirect target is the
// same either way; a failed return is logged and leaves state untouched.
func (controller *LoansController) ReturnBook(c *gin.Context) {
	bookID, err := strconv.ParseUint(c.PostForm("book_id"), 10, 32)
	if err == nil {
		if _, err := controller.service.ReturnBook(uint(bookID)); err != nil {
			log.Printf("Return of book %d rejected: %v", bookID, err)
		}
	}

	c.Redirect(http.StatusFound, "/view_borrowed_books")
}

func (controller *LoansController) renderBorrowForm(c *gin.Context) {
	books, err := controller.service.ListAvailableBooks()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}
	readers, err := controller.service.ListReaders()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading readers: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "borrow", gin.H{
		"Books":   books,
		"Readers": readers,
	})
}
