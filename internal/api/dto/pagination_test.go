package dto

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	t.Run("single page", func(t *testing.T) {
		meta := NewPageMeta(1, 10, 6)

		assert.Equal(t, 1, meta.Page)
		assert.Equal(t, 10, meta.PerPage)
		assert.Equal(t, 1, meta.TotalPages)
		assert.Equal(t, 1, meta.CurrentPage)
		assert.True(t, meta.IsFirstPage)
		assert.True(t, meta.IsLastPage)
	})

	t.Run("total pages rounds up", func(t *testing.T) {
		meta := NewPageMeta(1, 10, 11)
		assert.Equal(t, 2, meta.TotalPages)

		meta = NewPageMeta(1, 10, 20)
		assert.Equal(t, 2, meta.TotalPages)

		meta = NewPageMeta(1, 10, 21)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("previous and next are not clamped", func(t *testing.T) {
		meta := NewPageMeta(1, 10, 30)
		assert.Equal(t, 0, meta.PreviousPage)
		assert.Equal(t, 2, meta.NextPage)

		meta = NewPageMeta(3, 10, 30)
		assert.Equal(t, 2, meta.PreviousPage)
		assert.Equal(t, 4, meta.NextPage)
		assert.True(t, meta.IsLastPage)
	})

	t.Run("middle page", func(t *testing.T) {
		meta := NewPageMeta(2, 10, 30)

		assert.False(t, meta.IsFirstPage)
		assert.False(t, meta.IsLastPage)
		assert.Equal(t, 1, meta.PreviousPage)
		assert.Equal(t, 3, meta.NextPage)
	})

	t.Run("empty result set", func(t *testing.T) {
		meta := NewPageMeta(1, 10, 0)

		// Zero rows means zero pages, so page 1 is first but not last.
		assert.Equal(t, 0, meta.TotalPages)
		assert.True(t, meta.IsFirstPage)
		assert.False(t, meta.IsLastPage)
	})

	t.Run("page beyond the last", func(t *testing.T) {
		meta := NewPageMeta(5, 10, 30)

		assert.Equal(t, 3, meta.TotalPages)
		assert.False(t, meta.IsLastPage)
		assert.Equal(t, 6, meta.NextPage)
	})
}

func TestParsePageRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/movies", nil)
		req := ParsePageRequest(r)

		assert.Equal(t, DefaultPage, req.Page)
		assert.Equal(t, DefaultPerPage, req.Limit)
		assert.Equal(t, "desc", req.Order)
		assert.False(t, req.HasSearch())
	})

	t.Run("explicit values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/movies?page=3&limit=25&search=wick&orderBy=title&order=asc", nil)
		req := ParsePageRequest(r)

		assert.Equal(t, 3, req.Page)
		assert.Equal(t, 25, req.Limit)
		assert.Equal(t, "wick", req.Search)
		assert.Equal(t, "title", req.OrderBy)
		assert.Equal(t, "asc", req.Order)
		assert.Equal(t, 50, req.Offset())
	})

	t.Run("malformed values fall back to defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/movies?page=zero&limit=-5&order=sideways", nil)
		req := ParsePageRequest(r)

		assert.Equal(t, DefaultPage, req.Page)
		assert.Equal(t, DefaultPerPage, req.Limit)
		assert.Equal(t, "desc", req.Order)
	})

	t.Run("limit is capped", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/movies?limit=5000", nil)
		req := ParsePageRequest(r)

		assert.Equal(t, MaxPerPage, req.Limit)
	})

	t.Run("whitespace search counts as no search", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/movies?search=++", nil)
		req := ParsePageRequest(r)

		assert.False(t, req.HasSearch())
	})

	t.Run("search term is lowercased for matching", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/movies?search=WICK", nil)
		req := ParsePageRequest(r)

		assert.True(t, req.HasSearch())
		assert.Equal(t, "%wick%", req.SearchTerm())
	})
}
