package googlebooks

import "strings"

// Simplified field defaults applied when the upstream payload is missing data.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
)

// SimplifiedBook is the normalized record shape shared by search responses
// and imports. Every field is always present; defaults are deterministic.
type SimplifiedBook struct {
	GoogleBooksID *string `json:"google_books_id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	ISBN          *string `json:"isbn"`
	CoverURL      *string `json:"cover_url"`
}

// Simplify maps raw volumes into simplified records, one-to-one and
// order-preserving.
func Simplify(volumes []Volume) []SimplifiedBook {
	books := make([]SimplifiedBook, 0, len(volumes))
	for _, volume := range volumes {
		books = append(books, simplifyOne(volume))
	}
	return books
}

func simplifyOne(volume Volume) SimplifiedBook {
	info := volume.VolumeInfo

	book := SimplifiedBook{
		Title:    info.Title,
		Author:   extractAuthor(info),
		ISBN:     extractISBN(info),
		CoverURL: extractCoverURL(info),
	}
	if book.Title == "" {
		book.Title = UnknownTitle
	}
	if volume.ID != "" {
		id := volume.ID
		book.GoogleBooksID = &id
	}

	return book
}

func extractAuthor(info VolumeInfo) string {
	if len(info.Authors) == 0 {
		return UnknownAuthor
	}
	return strings.Join(info.Authors, ", ")
}

// extractISBN prefers ISBN-13 over ISBN-10 regardless of array order, so the
// identifiers are scanned twice rather than taking the first match.
func extractISBN(info VolumeInfo) *string {
	for _, identifier := range info.IndustryIdentifiers {
		if identifier.Type == "ISBN_13" {
			isbn := identifier.Identifier
			return &isbn
		}
	}
	for _, identifier := range info.IndustryIdentifiers {
		if identifier.Type == "ISBN_10" {
			isbn := identifier.Identifier
			return &isbn
		}
	}
	return nil
}

func extractCoverURL(info VolumeInfo) *string {
	if info.ImageLinks.Thumbnail != "" {
		cover := info.ImageLinks.Thumbnail
		return &cover
	}
	if info.ImageLinks.SmallThumbnail != "" {
		cover := info.ImageLinks.SmallThumbnail
		return &cover
	}
	return nil
}
