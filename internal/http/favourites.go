package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// FavouritesStore defines database operations for favorites management.
type FavouritesStore interface {
	AddFavourite(userID, bookID uint) error
	RemoveFavourite(userID, bookID uint) (bool, error)
	IsFavourite(userID, bookID uint) (bool, error)
	GetFavouriteBooks(userID uint, limit, offset int) ([]entities.Book, int64, error)
}

// BookFinder resolves book IDs for existence checks.
type BookFinder interface {
	GetBookByID(id uint) (*entities.Book, error)
}

type FavouritesController struct {
	store FavouritesStore
	books BookFinder
}

func NewFavouritesController(store FavouritesStore, books BookFinder) *FavouritesController {
	return &FavouritesController{store: store, books: books}
}

// AddFavourite adds a book to the authenticated user's favorites.
// Adding a book twice is reported as success, not a conflict.
// POST /api/v1/favorites/store/:book
func (fc *FavouritesController) AddFavourite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book")
	if !ok {
		return
	}
	userID := GetUser(c).ID

	book, err := fc.books.GetBookByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book not found")
			return
		}
		respondInternalError(c, err, "find book")
		return
	}

	already, err := fc.store.IsFavourite(userID, book.ID)
	if err != nil {
		respondInternalError(c, err, "check favourite")
		return
	}
	if already {
		respondSuccess(c, gin.H{"book_id": book.ID}, "Book is already in your favorites.")
		return
	}

	if err := fc.store.AddFavourite(userID, book.ID); err != nil {
		respondInternalError(c, err, "add favourite")
		return
	}

	respondSuccess(c, gin.H{"book_id": book.ID}, "Book added to favorites")
}

// RemoveFavourite removes a book from the authenticated user's favorites.
// A book that was never favorited is reported as not found.
// DELETE /api/v1/favorites/destroy/:book
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book")
	if !ok {
		return
	}
	userID := GetUser(c).ID

	removed, err := fc.store.RemoveFavourite(userID, bookID)
	if err != nil {
		respondInternalError(c, err, "remove favourite")
		return
	}
	if !removed {
		respondNotFound(c, "Book not found")
		return
	}

	respondSuccess(c, gin.H{}, "Book removed from favorites")
}

// ListFavourites returns the user's favorite books, newest favorite first.
// GET /api/v1/favorites
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	userID := GetUser(c).ID
	page, perPage := parsePageParams(c, defaultPerPage, maxLocalPerPage)

	books, total, err := fc.store.GetFavouriteBooks(userID, perPage, (page-1)*perPage)
	if err != nil {
		respondInternalError(c, err, "list favourites")
		return
	}

	collection := NewBookCollection(books, int(total), page, perPage, c.Request.URL.Path, "")
	respondSuccess(c, collection, "Favorite books retrieved successfully")
}
