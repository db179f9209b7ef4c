package dto

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// ListResponse is the envelope every collection endpoint returns.
type ListResponse struct {
	Data interface{} `json:"data"`
	Meta PageMeta    `json:"meta"`
}
