package books

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookfinder/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func googleID(id string) *string {
	return &id
}

func TestRepository_CreateAndGetByGoogleID(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	isbn := "9780553804577"
	book := &entities.Book{
		GoogleBooksID: googleID("zyTCAlFPjgYC"),
		Title:         "The Google Story",
		Author:        "David A. Vise",
		ISBN:          &isbn,
	}
	require.NoError(t, repo.CreateBook(book))
	assert.NotZero(t, book.ID)

	found, err := repo.GetBookByGoogleID("zyTCAlFPjgYC")
	require.NoError(t, err)
	assert.Equal(t, book.ID, found.ID)
	assert.Equal(t, "The Google Story", found.Title)
}

func TestRepository_GetByGoogleID_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetBookByGoogleID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_CreateBook_DuplicateGoogleID(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.CreateBook(&entities.Book{
		GoogleBooksID: googleID("dup123"),
		Title:         "First",
		Author:        "A",
	}))

	err := repo.CreateBook(&entities.Book{
		GoogleBooksID: googleID("dup123"),
		Title:         "Second",
		Author:        "B",
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRepository_ListBooks_NewestFirstWithTotal(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		book := &entities.Book{Title: title, Author: "Author"}
		require.NoError(t, db.Create(book).Error)
		require.NoError(t, db.Model(book).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	books, total, err := repo.ListBooks(2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, books, 2)
	assert.Equal(t, "Newest", books[0].Title)
	assert.Equal(t, "Middle", books[1].Title)

	books, total, err = repo.ListBooks(2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, books, 1)
	assert.Equal(t, "Oldest", books[0].Title)
}

func TestRepository_GetBookByID(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Local Book", Author: "Author"}
	require.NoError(t, repo.CreateBook(book))

	found, err := repo.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Local Book", found.Title)

	_, err = repo.GetBookByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
