package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookfinder/internal/entities"
)

func createBook(t *testing.T, env *testEnv, title string) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, Author: "Author"}
	require.NoError(t, env.db.DB.Create(book).Error)
	return book
}

func TestAddFavourite(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "user@example.com", entities.UserRoleUser)
	book := createBook(t, env, "Dune")

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/favorites/store/%d", book.ID), token, "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeEnvelope(t, w)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Book added to favorites", payload["message"])
}

func TestAddFavourite_AlreadyFavorited(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "user@example.com", entities.UserRoleUser)
	book := createBook(t, env, "Dune")

	path := fmt.Sprintf("/api/v1/favorites/store/%d", book.ID)
	first := env.request(t, http.MethodPost, path, token, "")
	require.Equal(t, http.StatusOK, first.Code)

	second := env.request(t, http.MethodPost, path, token, "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "Book is already in your favorites.", decodeEnvelope(t, second)["message"])

	var count int64
	env.db.DB.Model(&entities.Favorite{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddFavourite_UnknownBook(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "user@example.com", entities.UserRoleUser)

	w := env.request(t, http.MethodPost, "/api/v1/favorites/store/9999", token, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Book not found", decodeEnvelope(t, w)["message"])

	// Garbage IDs look like unknown books, not routing errors
	garbage := env.request(t, http.MethodPost, "/api/v1/favorites/store/abc", token, "")
	assert.Equal(t, http.StatusNotFound, garbage.Code)
}

func TestRemoveFavourite(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "user@example.com", entities.UserRoleUser)
	book := createBook(t, env, "Dune")

	env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/favorites/store/%d", book.ID), token, "")

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/favorites/destroy/%d", book.ID), token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book removed from favorites", decodeEnvelope(t, w)["message"])

	// A second removal finds nothing to delete
	again := env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/favorites/destroy/%d", book.ID), token, "")
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestRemoveFavourite_NeverFavorited(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "user@example.com", entities.UserRoleUser)
	book := createBook(t, env, "Dune")

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/favorites/destroy/%d", book.ID), token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFavourites(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "user@example.com", entities.UserRoleUser)
	_, otherToken := env.registerUser(t, "other@example.com", entities.UserRoleUser)

	first := createBook(t, env, "First Favorite")
	second := createBook(t, env, "Second Favorite")
	foreign := createBook(t, env, "Someone Else's")

	env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/favorites/store/%d", first.ID), token, "")
	env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/favorites/store/%d", second.ID), token, "")
	env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/favorites/store/%d", foreign.ID), otherToken, "")

	w := env.request(t, http.MethodGet, "/api/v1/favorites", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Message string `json:"message"`
		Data    struct {
			Books []entities.Book `json:"books"`
			Meta  CollectionMeta  `json:"meta"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	assert.Equal(t, "Favorite books retrieved successfully", payload.Message)
	require.Len(t, payload.Data.Books, 2)
	assert.Equal(t, "Second Favorite", payload.Data.Books[0].Title)
	assert.Equal(t, "First Favorite", payload.Data.Books[1].Title)
	assert.Equal(t, 2, payload.Data.Meta.TotalItems)
}

func TestListFavourites_Empty(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.registerUser(t, "user@example.com", entities.UserRoleUser)

	w := env.request(t, http.MethodGet, "/api/v1/favorites", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data struct {
			Meta CollectionMeta `json:"meta"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, 0, payload.Data.Meta.TotalItems)
	assert.Equal(t, 0, payload.Data.Meta.From)
}

func TestFavourites_RequireAuth(t *testing.T) {
	env := setupTestEnv(t, nil)

	assert.Equal(t, http.StatusUnauthorized, env.request(t, http.MethodGet, "/api/v1/favorites", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, env.request(t, http.MethodPost, "/api/v1/favorites/store/1", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, env.request(t, http.MethodDelete, "/api/v1/favorites/destroy/1", "", "").Code)
}
