package models

import "time"

// User roles stored on the profile record.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// ProfileDB represents the 1:1 profile extension of a user.
type ProfileDB struct {
	ID        int64      `json:"id" db:"id"`                           // Primary key
	UserID    int64      `json:"user_id" db:"user_id"`                 // Owning user
	FirstName string     `json:"first_name" db:"first_name"`           // Display first name
	LastName  string     `json:"last_name" db:"last_name"`             // Display last name
	Email     string     `json:"email" db:"email"`                     // Contact email, unique among non-deleted profiles
	Phone     string     `json:"phone" db:"phone"`                     // Contact phone
	Role      string     `json:"role" db:"role"`                       // RoleUser or RoleAdmin
	IsActive  bool       `json:"is_active" db:"is_active"`             // Mirrors the user's active flag
	CreatedAt time.Time  `json:"created_at" db:"created_at"`           // Creation timestamp
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`           // Last update timestamp
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"` // Soft-delete timestamp
}
