package models

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	CurrentPassword string `json:"current_password" validate:"required"`

	// New password
	// required: true
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ForgotPasswordRequest represents the JSON body for a reset-link request
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Registered email address
	// required: true
	// example: ada@example.com
	Email string `json:"email" validate:"required,email"`
}

// ValidateResetTokenRequest represents the JSON body for token validation
// swagger:model ValidateResetTokenRequest
type ValidateResetTokenRequest struct {
	// Reset token from the email link
	// required: true
	Token string `json:"token" validate:"required"`
}

// ValidateResetTokenResponse reports whether a reset token is still usable
// swagger:model ValidateResetTokenResponse
type ValidateResetTokenResponse struct {
	// Token validity
	// example: true
	Valid bool `json:"valid"`
}

// ResetPasswordRequest represents the JSON body for a token-based reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Reset token from the email link
	// required: true
	Token string `json:"token" validate:"required"`

	// New password
	// required: true
	NewPassword string `json:"new_password" validate:"required,min=6"`

	// New password confirmation, must equal new password
	// required: true
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=NewPassword"`
}

// MessageResponse is a generic success message envelope
// swagger:model MessageResponse
type MessageResponse struct {
	// Success message
	// example: Password changed successfully
	Message string `json:"message"`
}

// ErrorResponse is a generic error envelope
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Invalid username or password
	Error string `json:"error"`
}
