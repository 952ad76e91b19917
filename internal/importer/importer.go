// Package importer reconciles Google Books volumes into the local catalog:
// an already-imported ID returns the existing row, an unseen one is fetched,
// normalized and persisted exactly once.
package importer

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookfinder/internal/entities"
	"github.com/mrlokans/bookfinder/internal/googlebooks"
)

// ErrNotFound means the volume does not exist upstream (or the lookup
// failed; the client does not distinguish the two).
var ErrNotFound = errors.New("book not found in Google Books API")

// ImportFailedError wraps a persistence failure during import. The HTTP
// layer redacts the cause outside debug mode.
type ImportFailedError struct {
	Err error
}

func (e *ImportFailedError) Error() string {
	return fmt.Sprintf("failed to import book: %v", e.Err)
}

func (e *ImportFailedError) Unwrap() error {
	return e.Err
}

// BookStore defines the persistence operations the importer needs.
type BookStore interface {
	GetBookByGoogleID(googleBooksID string) (*entities.Book, error)
	CreateBook(book *entities.Book) error
}

// LookupClient fetches raw volumes from the external API.
type LookupClient interface {
	GetVolume(ctx context.Context, volumeID string) *googlebooks.Volume
}

// Importer imports books by Google Books ID.
type Importer struct {
	store  BookStore
	lookup LookupClient
}

func New(store BookStore, lookup LookupClient) *Importer {
	return &Importer{store: store, lookup: lookup}
}

// Import returns the local book for googleBooksID and whether this call
// created it. An already-imported ID short-circuits without an external
// call. Two concurrent imports of the same unseen ID both succeed: the
// loser's unique-constraint violation is resolved by re-fetching the
// winner's row.
func (i *Importer) Import(ctx context.Context, googleBooksID string) (*entities.Book, bool, error) {
	existing, err := i.store.GetBookByGoogleID(googleBooksID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, &ImportFailedError{Err: err}
	}

	volume := i.lookup.GetVolume(ctx, googleBooksID)
	if volume == nil {
		return nil, false, ErrNotFound
	}

	simplified := googlebooks.Simplify([]googlebooks.Volume{*volume})[0]

	book := &entities.Book{
		GoogleBooksID: &googleBooksID,
		Title:         simplified.Title,
		Author:        simplified.Author,
		ISBN:          simplified.ISBN,
		CoverURL:      simplified.CoverURL,
	}

	if err := i.store.CreateBook(book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent import of the same ID
			winner, fetchErr := i.store.GetBookByGoogleID(googleBooksID)
			if fetchErr != nil {
				return nil, false, &ImportFailedError{Err: fetchErr}
			}
			return winner, false, nil
		}
		return nil, false, &ImportFailedError{Err: err}
	}

	return book, true, nil
}
