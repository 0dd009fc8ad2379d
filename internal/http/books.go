package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// BooksStore defines database operations for the book catalog.
type BooksStore interface {
	List() ([]entities.Book, error)
	GetByID(id uint) (*entities.Book, error)
	GetOrCreate(book *entities.Book) (*entities.Book, bool, error)
	Update(id uint, updates map[string]any) (*entities.Book, error)
	Delete(id uint) error
}

type BooksController struct {
	store BooksStore
}

func NewBooksController(store BooksStore) *BooksController {
	return &BooksController{store: store}
}

type createBookRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	Description   string `json:"description" binding:"required"`
	CoverImageURL string `json:"cover_image_url" binding:"omitempty,url"`
	PublishedDate string `json:"published_date" binding:"required,datetime=2006-01-02"`
	GoogleBooksID string `json:"google_books_id" binding:"required"`
}

type updateBookRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1"`
	Author        *string `json:"author" binding:"omitempty,min=1"`
	Description   *string `json:"description"`
	CoverImageURL *string `json:"cover_image_url" binding:"omitempty,url"`
	PublishedDate *string `json:"published_date" binding:"omitempty,datetime=2006-01-02"`
	GoogleBooksID *string `json:"google_books_id" binding:"omitempty,min=1"`
}

// ListBooks returns the whole catalog.
// GET /api/books
func (bc *BooksController) ListBooks(c *gin.Context) {
	allBooks, err := bc.store.List()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, allBooks)
}

// GetBook returns a single book.
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook adds a book to the catalog. When a book with the same
// google_books_id already exists the existing record is returned with 200
// instead of creating a duplicate; a fresh book comes back as 201. A racing
// duplicate insert is reported as 409.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	book := &entities.Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		PublishedDate: req.PublishedDate,
		GoogleBooksID: req.GoogleBooksID,
	}

	result, created, err := bc.store.GetOrCreate(book)
	if err != nil {
		if errors.Is(err, books.ErrDuplicateGoogleBooksID) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	if created {
		respondCreated(c, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateBook applies partial updates to a book. Any authenticated user may
// edit any book.
// PUT/PATCH /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updates := make(map[string]any)
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CoverImageURL != nil {
		updates["cover_image_url"] = *req.CoverImageURL
	}
	if req.PublishedDate != nil {
		updates["published_date"] = *req.PublishedDate
	}
	if req.GoogleBooksID != nil {
		updates["google_books_id"] = *req.GoogleBooksID
	}

	book, err := bc.store.Update(id, updates)
	if err != nil {
		switch {
		case errors.Is(err, books.ErrNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, books.ErrDuplicateGoogleBooksID):
			respondConflict(c, err.Error())
		default:
			respondInternalError(c, err, "update book")
		}
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book and cascades to its tracking records and
// comments.
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.Delete(id); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}
	c.Status(http.StatusNoContent)
}
