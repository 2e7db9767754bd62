package models

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// First name
	// required: true
	// example: Ada
	FirstName string `json:"first_name" validate:"required,max=50"`

	// Last name
	// required: true
	// example: Lovelace
	LastName string `json:"last_name" validate:"required,max=50"`

	// Username
	// required: true
	// example: ada
	Username string `json:"username" validate:"required,max=50"`

	// Password
	// required: true
	// example: Secret1!
	Password string `json:"password" validate:"required,min=6"`

	// Password confirmation, must equal password
	// required: true
	// example: Secret1!
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`

	// Email
	// required: true
	// example: ada@example.com
	Email string `json:"email" validate:"required,email"`

	// Phone
	// example: 555-0100
	Phone string `json:"phone" validate:"max=20"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// example: User registered successfully
	Message string `json:"message"`
}
