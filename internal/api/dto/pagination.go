package dto

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PageMeta is the pagination summary returned alongside list data. All fields
// are derived arithmetically from (page, perPage, totalCount); nothing is
// re-queried.
type PageMeta struct {
	Page         int  `json:"page"`
	PerPage      int  `json:"perPage"`
	TotalPages   int  `json:"totalPages"`
	CurrentPage  int  `json:"currentPage"`
	PreviousPage int  `json:"previousPage"`
	NextPage     int  `json:"nextPage"`
	IsFirstPage  bool `json:"isFirstPage"`
	IsLastPage   bool `json:"isLastPage"`
}

// NewPageMeta computes the page envelope. PreviousPage and NextPage are not
// clamped at the boundaries, and with totalCount == 0 TotalPages is 0 so
// IsLastPage is false even on page 1. Both behaviors are part of the public
// contract; see the tests.
func NewPageMeta(page, perPage int, totalCount int64) PageMeta {
	totalPages := int((totalCount + int64(perPage) - 1) / int64(perPage))

	return PageMeta{
		Page:         page,
		PerPage:      perPage,
		TotalPages:   totalPages,
		CurrentPage:  page,
		PreviousPage: page - 1,
		NextPage:     page + 1,
		IsFirstPage:  page == 1,
		IsLastPage:   page == totalPages,
	}
}

// PageRequest carries the client-supplied pagination/filter/sort parameters of
// a list endpoint.
type PageRequest struct {
	Page    int
	Limit   int
	Search  string
	OrderBy string
	Order   string
}

// ParsePageRequest reads pagination parameters from the query string, applying
// defaults for anything absent or malformed.
func ParsePageRequest(r *http.Request) PageRequest {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	req := PageRequest{
		Page:    page,
		Limit:   limit,
		Search:  q.Get("search"),
		OrderBy: q.Get("orderBy"),
		Order:   q.Get("order"),
	}
	req.Normalize()
	return req
}

func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultPerPage
	}
	if p.Limit > MaxPerPage {
		p.Limit = MaxPerPage
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
}

func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasSearch reports whether a non-blank search term was supplied. A search of
// only whitespace behaves exactly like no search at all.
func (p *PageRequest) HasSearch() bool {
	return strings.TrimSpace(p.Search) != ""
}

// SearchTerm returns the LIKE pattern for a case-insensitive substring match.
func (p *PageRequest) SearchTerm() string {
	return "%" + strings.ToLower(p.Search) + "%"
}
