package http

import (
	"context"
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/entities"
	"github.com/mrlokans/bookfinder/internal/googlebooks"
	"github.com/mrlokans/bookfinder/internal/importer"
)

const (
	defaultPerPage  = 10
	maxLocalPerPage = 50
)

// BooksStore defines database operations for the local catalog.
type BooksStore interface {
	ListBooks(limit, offset int) ([]entities.Book, int64, error)
}

// SearchClient queries the external book API.
type SearchClient interface {
	Search(ctx context.Context, query string, page, perPage int) *googlebooks.SearchResult
}

// BookImporter reconciles external volumes into the local catalog.
type BookImporter interface {
	Import(ctx context.Context, googleBooksID string) (*entities.Book, bool, error)
}

type BooksController struct {
	store    BooksStore
	search   SearchClient
	importer BookImporter
	debug    bool
}

func NewBooksController(store BooksStore, search SearchClient, bookImporter BookImporter, debug bool) *BooksController {
	return &BooksController{
		store:    store,
		search:   search,
		importer: bookImporter,
		debug:    debug,
	}
}

// ListBooks returns the local catalog, newest first.
// GET /api/v1/books
func (bc *BooksController) ListBooks(c *gin.Context) {
	page, perPage := parsePageParams(c, defaultPerPage, maxLocalPerPage)

	books, total, err := bc.store.ListBooks(perPage, (page-1)*perPage)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	collection := NewBookCollection(books, int(total), page, perPage, c.Request.URL.Path, "")
	respondSuccess(c, collection, "Books retrieved successfully")
}

type searchRequest struct {
	Query string `form:"query" binding:"required,min=2,max=255"`
}

// SearchBooks searches Google Books, admin only.
// GET /api/v1/books/search
func (bc *BooksController) SearchBooks(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondValidationError(c, gin.H{"query": "The query field is required and must be 2-255 characters."})
		return
	}
	page, perPage := parsePageParams(c, defaultPerPage, googlebooks.MaxResults)

	result := bc.search.Search(c.Request.Context(), req.Query, page, perPage)
	if len(result.Items) == 0 {
		respondNotFound(c, "No books found")
		return
	}

	books := googlebooks.Simplify(result.Items)
	collection := NewBookCollection(books, result.TotalItems, page, perPage, c.Request.URL.Path, req.Query)
	respondSuccess(c, collection, "Books retrieved successfully")
}

type importRequest struct {
	GoogleBooksID string `json:"google_books_id" binding:"required"`
}

// ImportBook imports a book from Google Books by ID, admin only. Importing
// an already-imported ID returns the existing row.
// POST /api/v1/books/import
func (bc *BooksController) ImportBook(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, gin.H{"google_books_id": "The google books id field is required."})
		return
	}

	book, created, err := bc.importer.Import(c.Request.Context(), req.GoogleBooksID)
	if err != nil {
		if errors.Is(err, importer.ErrNotFound) {
			respondNotFound(c, "Book not found in Google Books API")
			return
		}

		log.Printf("Import failed (google_books_id=%q): %v", req.GoogleBooksID, err)
		cause := "An unexpected error occurred"
		if bc.debug {
			cause = err.Error()
		}
		respondErrorWithCause(c, 500, "Failed to import book", cause)
		return
	}

	if created {
		respondCreated(c, gin.H{"book": book}, "Book imported successfully from Google Books")
		return
	}
	respondSuccess(c, gin.H{"book": book}, "Book already exists in database")
}
