package models

import "time"

// UserDB represents a user identity record in the database.
type UserDB struct {
	ID                   int64      `json:"id" db:"id"`                                           // Primary key
	Username             string     `json:"username" db:"username"`                               // Unique among non-deleted users
	PasswordHash         string     `json:"-" db:"password_hash"`                                 // Current bcrypt hash
	PreviousPasswordHash *string    `json:"-" db:"previous_password_hash"`                        // Hash before the last rotation
	ResetToken           *string    `json:"-" db:"reset_token"`                                   // Pending reset token, set together with its expiry
	ResetTokenExpiresAt  *time.Time `json:"-" db:"reset_token_expires_at"`                        // Reset token expiry, set together with the token
	IsActive             bool       `json:"is_active" db:"is_active"`                             // Soft-delete / deactivation flag
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`                           // Creation timestamp
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`                           // Last update timestamp
	DeletedAt            *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`                 // Soft-delete timestamp
}
