package dto

type CreateWatchlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

type UpdateWatchlistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

type CreateWatchlistResponse struct {
	Message     string `json:"message"`
	WatchlistID uint   `json:"watchlistId"`
}

type ToggleWatchlistResponse struct {
	Message  string `json:"message"`
	IsPublic bool   `json:"isPublic"`
}
