package models

import "time"

// CreatePostRequest represents the JSON body for post creation
// swagger:model CreatePostRequest
type CreatePostRequest struct {
	// Post body
	// required: true
	// example: hello world
	Text string `json:"text" validate:"required,max=4000"`

	// Optional base64-encoded image
	ImageBase64 string `json:"image_base64,omitempty"`
}

// PostResponse represents a post in API responses
// swagger:model PostResponse
type PostResponse struct {
	// Post id
	ID int64 `json:"id"`

	// Post body
	Text string `json:"text"`

	// Optional base64-encoded image
	ImageBase64 string `json:"image_base64,omitempty"`

	// Author id
	UserID int64 `json:"user_id"`

	// Author username
	Username string `json:"username"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`
}
