package dto

// MessageResponse is the plain {message} body used by delete and reset routes.
type MessageResponse struct {
	Message string `json:"message"`
}
