package models

import "time"

// PostDB represents a post record in the database.
type PostDB struct {
	ID        int64      `json:"id" db:"id"`                           // Primary key
	UserID    int64      `json:"user_id" db:"user_id"`                 // Author
	Text      string     `json:"text" db:"text"`                       // Post body
	ImageData *string    `json:"image_data,omitempty" db:"image_data"` // Optional base64-encoded image
	IsActive  bool       `json:"is_active" db:"is_active"`             // Soft-delete flag
	CreatedAt time.Time  `json:"created_at" db:"created_at"`           // Creation timestamp
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`           // Last update timestamp
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"` // Soft-delete timestamp
}

// PostWithAuthorDB is a post row joined with its author's username.
type PostWithAuthorDB struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	Text      string    `db:"text"`
	ImageData *string   `db:"image_data"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}
