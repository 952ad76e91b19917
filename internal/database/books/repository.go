// Package books provides database operations for the local book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByGoogleID("zyTCAlFPjgYC")
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBookByID retrieves a book by its numeric ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookByGoogleID retrieves a book by its Google Books identifier.
// Returns gorm.ErrRecordNotFound when no such book has been imported.
func (r *Repository) GetBookByGoogleID(googleBooksID string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("google_books_id = ?", googleBooksID).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook persists a new book inside a transaction. A concurrent import
// of the same google_books_id fails with gorm.ErrDuplicatedKey; callers
// recover by re-fetching.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(book).Error
	})
}

// ListBooks returns books newest-first with the total count for pagination.
func (r *Repository) ListBooks(limit, offset int) ([]entities.Book, int64, error) {
	var books []entities.Book
	var total int64

	if err := r.db.Model(&entities.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&books).Error
	return books, total, err
}
