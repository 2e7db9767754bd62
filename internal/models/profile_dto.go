package models

import "time"

// UserProfileResponse represents the authenticated user's profile
// swagger:model UserProfileResponse
type UserProfileResponse struct {
	// User id
	ID int64 `json:"id"`

	// First name
	FirstName string `json:"first_name"`

	// Last name
	LastName string `json:"last_name"`

	// Username
	Username string `json:"username"`

	// Email
	Email string `json:"email"`

	// Phone
	Phone string `json:"phone"`

	// Role
	Role string `json:"role"`

	// Account creation timestamp
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest represents the JSON body for a profile update
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// First name
	// required: true
	FirstName string `json:"first_name" validate:"required,max=50"`

	// Last name
	// required: true
	LastName string `json:"last_name" validate:"required,max=50"`

	// Username
	// required: true
	Username string `json:"username" validate:"required,max=50"`

	// Email
	// required: true
	Email string `json:"email" validate:"required,email"`

	// Phone
	Phone string `json:"phone" validate:"max=20"`
}
