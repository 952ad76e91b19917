// Package favourites provides database operations for the user/book
// favorites association.
//
// This package implements the FavouritesStore interface defined in
// internal/http/favourites.go.
//
// # Interface Implementation
//
//	var _ http.FavouritesStore = (*Repository)(nil)
package favourites

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddFavourite links a book to a user's favorites. Adding a book that is
// already favorited is a no-op: the unique (user_id, book_id) index absorbs
// concurrent duplicate adds.
func (r *Repository) AddFavourite(userID, bookID uint) error {
	favorite := &entities.Favorite{UserID: userID, BookID: bookID}
	err := r.db.Create(favorite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// RemoveFavourite unlinks a book from a user's favorites. Returns whether
// an edge actually existed.
func (r *Repository) RemoveFavourite(userID, bookID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&entities.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsFavourite reports whether the user has favorited the book.
func (r *Repository) IsFavourite(userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Favorite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

// GetFavouriteBooks returns a user's favorite books, most recently
// favorited first, with the total count for pagination.
func (r *Repository) GetFavouriteBooks(userID uint, limit, offset int) ([]entities.Book, int64, error) {
	var books []entities.Book
	var total int64

	err := r.db.Model(&entities.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	query := r.db.Model(&entities.Book{}).
		Joins("JOIN user_book ON user_book.book_id = books.id").
		Where("user_book.user_id = ?", userID).
		Order("user_book.created_at DESC, user_book.id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err = query.Find(&books).Error
	return books, total, err
}
