package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Load HTML templates
	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	router.Static("/static", cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Service)
	loansController := NewLoansController(cfg.Service, cfg.Reminders)

	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	// Book catalog
	router.GET("/", booksController.BooksPage)
	router.GET("/add_book", booksController.AddBookPage)
	router.POST("/add_book", booksController.AddBook)

	// Lending
	router.GET("/view_borrowed_books", loansController.BorrowedBooksPage)
	router.GET("/borrow_book", loansController.BorrowBookPage)
	router.POST("/borrow_book", loansController.BorrowBook)
	router.POST("/return_book", loansController.ReturnBook)

	return router
}
