package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/ekarabulut/social-wall/internal/services"
	"github.com/ekarabulut/social-wall/internal/validation"
)

// PasswordResetter defines the interface that the reset-password service must implement.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

// NewResetPasswordHandler returns an HTTP handler that sets a new password
// for the holder of a valid reset token.
// @Summary Reset password with a token
// @Description Sets a new password for the account holding the reset token and clears the token
// @Tags auth
// @Accept json
// @Produce json
// @Param resetPasswordRequest body models.ResetPasswordRequest true "Reset Password Request"
// @Success 200 {object} models.MessageResponse "Password reset"
// @Failure 400 {object} models.ErrorResponse "Validation failed / password reuse"
// @Failure 401 {object} models.ErrorResponse "Invalid or expired reset token"
// @Router /reset-password [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ResetPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if err := svc.ResetPassword(r.Context(), req); err != nil {
			var valErr *validation.ValidationError
			switch {
			case errors.As(err, &valErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: valErr.Error(),
				})
			case errors.Is(err, services.ErrPasswordReuse):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "New password cannot be the same as a previous password",
				})
			case errors.Is(err, services.ErrInvalidResetToken):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "Invalid or expired reset token",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.MessageResponse{
			Message: "Password reset successfully",
		})
	}
}
