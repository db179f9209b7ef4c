package dto

import "cinelog/internal/api/validation"

type CreateMovieRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"releaseDate"`
	Rating      int    `json:"rating"`
	Image       string `json:"image"`
	Trailer     string `json:"trailer"`
	Genres      []uint `json:"genres"`
}

func (r CreateMovieRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	}
	if r.Description == "" {
		errors["description"] = "Description is required"
	}
	if r.ReleaseDate == "" {
		errors["releaseDate"] = "Release date is required"
	} else if !validation.IsValidDate(r.ReleaseDate) {
		errors["releaseDate"] = "Release date must be YYYY-MM-DD"
	}
	if r.Rating < 0 || r.Rating > 100 {
		errors["rating"] = "Rating must be between 0 and 100"
	}
	if r.Image == "" {
		errors["image"] = "Image URL is required"
	} else if !validation.IsValidURL(r.Image) {
		errors["image"] = "Image must be a valid URL"
	}
	if r.Trailer == "" {
		errors["trailer"] = "Trailer URL is required"
	} else if !validation.IsValidURL(r.Trailer) {
		errors["trailer"] = "Trailer must be a valid URL"
	}
	if len(r.Genres) == 0 {
		errors["genres"] = "At least one genre is required"
	}

	return errors
}
