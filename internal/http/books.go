package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/library"
)

type BooksController struct {
	service *library.Service
}

func NewBooksController(service *library.Service) *BooksController {
	return &BooksController{
		service: service,
	}
}

// BooksPage renders the full catalog with each book marked available or
// borrowed.
func (controller *BooksController) BooksPage(c *gin.Context) {
	books, err := controller.service.ListBooks()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	available := 0
	for _, book := range books {
		if book.Available {
			available++
		}
	}

	c.HTML(http.StatusOK, "books", gin.H{
		"Books":      books,
		"TotalBooks": len(books),
		"Available":  available,
	})
}

// AddBookPage renders a blank add-book form.
func (controller *BooksController) AddBookPage(c *gin.Context) {
	c.HTML(http.StatusOK, "addbook", gin.H{})
}

// AddBook handles the add-book form submission. On success it redirects to
// the catalog; a duplicate title or unparseable year re-renders the form with
// an inline error instead of failing silently.
func (controller *BooksController) AddBook(c *gin.Context) {
	title := c.PostForm("title")
	author := c.PostForm("author")
	yearStr := c.PostForm("year_published")

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		c.HTML(http.StatusBadRequest, "addbook", gin.H{
			"Error":  "Year must be a number",
			"Title":  title,
			"Author": author,
		})
		return
	}

	_, err = controller.service.AddBook(title, author, year)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateTitle) {
			c.HTML(http.StatusConflict, "addbook", gin.H{
				"Error":  "A book with this title already exists",
				"Title":  title,
				"Author": author,
			})
			return
		}
		c.String(http.StatusInternalServerError, "Error adding book: %s", err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/")
}
