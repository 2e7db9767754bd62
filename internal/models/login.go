package models

import "time"

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// example: ada
	Username string `json:"username" validate:"required"`

	// Password
	// required: true
	// example: Secret1!
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// JWT token
	// example: JWT_TOKEN
	Token string `json:"token"`

	// Absolute token expiry
	Expiry time.Time `json:"expiry"`

	// Role of the authenticated user
	// example: User
	Role string `json:"role"`
}

// LoginResult is the service-level outcome of a successful login.
type LoginResult struct {
	Token  string
	Expiry time.Time
	Role   string
}
