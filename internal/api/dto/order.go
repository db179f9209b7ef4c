package dto

// Orderable field whitelists per resource, mapping the client-facing name to
// the database column. Anything not in the map falls back to the resource
// default; the client's direction is kept either way.
var (
	MovieOrderFields = map[string]string{
		"id":          "id",
		"title":       "title",
		"description": "description",
		"releaseDate": "release_date",
		"rating":      "rating",
		"image":       "image",
		"trailer":     "trailer",
	}

	WatchlistOrderFields = map[string]string{
		"id":        "id",
		"name":      "name",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
)

const (
	DefaultMovieOrderField     = "rating"
	DefaultWatchlistOrderField = "updated_at"
)

// ResolveOrder maps a client-supplied sort field and direction to a concrete
// ORDER BY clause. An unknown field silently degrades to the default column —
// a declared policy, not a validation failure — while the requested direction
// is preserved. An unknown direction degrades to descending.
func ResolveOrder(field, direction string, whitelist map[string]string, defaultColumn string) string {
	column, ok := whitelist[field]
	if !ok {
		column = defaultColumn
	}
	if direction != "asc" {
		direction = "desc"
	}
	return column + " " + direction
}
