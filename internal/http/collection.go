package http

import (
	"net/url"
	"strconv"
)

// CollectionMeta carries pagination metadata for list responses.
type CollectionMeta struct {
	TotalItems  int `json:"total_items"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// CollectionLinks carries navigation links. Prev and next are null on the
// first and last page respectively.
type CollectionLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// BookCollection is the paginated envelope shared by local lists and
// external search results. It only consumes counts and page numbers, so it
// is agnostic to where the items came from.
type BookCollection struct {
	Books any             `json:"books"`
	Meta  CollectionMeta  `json:"meta"`
	Links CollectionLinks `json:"links"`
}

// NewBookCollection assembles pagination meta and links for items.
// path is the canonical request path; query is carried into links when
// non-empty. perPage must be positive.
func NewBookCollection(books any, totalItems, currentPage, perPage int, path, query string) BookCollection {
	lastPage := (totalItems + perPage - 1) / perPage

	from := 0
	if totalItems > 0 {
		from = (currentPage-1)*perPage + 1
	}
	to := currentPage * perPage
	if to > totalItems {
		to = totalItems
	}

	link := func(page int) string {
		params := url.Values{}
		if query != "" {
			params.Set("query", query)
		}
		params.Set("page", strconv.Itoa(page))
		params.Set("per_page", strconv.Itoa(perPage))
		return path + "?" + params.Encode()
	}

	links := CollectionLinks{
		First: link(1),
		Last:  link(lastPage),
	}
	if currentPage > 1 {
		prev := link(currentPage - 1)
		links.Prev = &prev
	}
	if currentPage < lastPage {
		next := link(currentPage + 1)
		links.Next = &next
	}

	return BookCollection{
		Books: books,
		Meta: CollectionMeta{
			TotalItems:  totalItems,
			PerPage:     perPage,
			CurrentPage: currentPage,
			LastPage:    lastPage,
			From:        from,
			To:          to,
		},
		Links: links,
	}
}
