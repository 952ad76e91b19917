package favourites

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
	dbPath := "./test_favourites_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.Book{}, &entities.Favorite{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	user := &entities.User{Name: "Test User", Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, title string) *entities.Book {
	book := &entities.Book{Title: title, Author: "Test Author"}
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestRepository_AddFavourite_Idempotent(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, "Test Book")

	require.NoError(t, repo.AddFavourite(user.ID, book.ID))
	// Duplicate add absorbs the unique-constraint conflict
	require.NoError(t, repo.AddFavourite(user.ID, book.ID))

	var count int64
	db.Model(&entities.Favorite{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRepository_RemoveFavourite(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, "Test Book")
	require.NoError(t, repo.AddFavourite(user.ID, book.ID))

	removed, err := repo.RemoveFavourite(user.ID, book.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Removing again is a safe no-op reported as not-removed
	removed, err = repo.RemoveFavourite(user.ID, book.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepository_IsFavourite(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader@example.com")
	book := createTestBook(t, db, "Test Book")

	favourited, err := repo.IsFavourite(user.ID, book.ID)
	require.NoError(t, err)
	assert.False(t, favourited)

	require.NoError(t, repo.AddFavourite(user.ID, book.ID))

	favourited, err = repo.IsFavourite(user.ID, book.ID)
	require.NoError(t, err)
	assert.True(t, favourited)
}

func TestRepository_GetFavouriteBooks_ScopedToUser(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	book1 := createTestBook(t, db, "Book One")
	book2 := createTestBook(t, db, "Book Two")

	require.NoError(t, repo.AddFavourite(alice.ID, book1.ID))
	require.NoError(t, repo.AddFavourite(alice.ID, book2.ID))
	require.NoError(t, repo.AddFavourite(bob.ID, book1.ID))

	books, total, err := repo.GetFavouriteBooks(alice.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, books, 2)

	books, total, err = repo.GetFavouriteBooks(bob.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, books, 1)
	assert.Equal(t, "Book One", books[0].Title)
}

func TestRepository_GetFavouriteBooks_NewestFavoriteFirst(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader@example.com")
	first := createTestBook(t, db, "Favorited First")
	second := createTestBook(t, db, "Favorited Second")

	base := time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&entities.Favorite{UserID: user.ID, BookID: first.ID, CreatedAt: base}).Error)
	require.NoError(t, db.Create(&entities.Favorite{UserID: user.ID, BookID: second.ID, CreatedAt: base.Add(time.Minute)}).Error)

	books, _, err := repo.GetFavouriteBooks(user.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Favorited Second", books[0].Title)
	assert.Equal(t, "Favorited First", books[1].Title)
}

func TestRepository_GetFavouriteBooks_Pagination(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader@example.com")
	for i := 0; i < 5; i++ {
		book := createTestBook(t, db, "Book")
		require.NoError(t, repo.AddFavourite(user.ID, book.ID))
	}

	books, total, err := repo.GetFavouriteBooks(user.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, books, 2)

	books, _, err = repo.GetFavouriteBooks(user.ID, 2, 4)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}
