package models

import "time"

// AdminUserDB is a user row joined with its profile for the moderation view.
type AdminUserDB struct {
	ID        int64      `db:"id"`
	Username  string     `db:"username"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Email     string     `db:"email"`
	Phone     string     `db:"phone"`
	Role      string     `db:"role"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// AdminUserResponse represents a user in the admin dashboard list
// swagger:model AdminUserResponse
type AdminUserResponse struct {
	// User id
	ID int64 `json:"id"`

	// Username
	Username string `json:"username"`

	// First name
	FirstName string `json:"first_name"`

	// Last name
	LastName string `json:"last_name"`

	// Email
	Email string `json:"email"`

	// Phone
	Phone string `json:"phone"`

	// Role
	Role string `json:"role"`

	// Active flag
	IsActive bool `json:"is_active"`

	// Account creation timestamp
	CreatedAt time.Time `json:"created_at"`
}
