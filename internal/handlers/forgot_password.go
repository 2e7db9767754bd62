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

// PasswordForgetter defines the interface that the forgot-password service must implement.
type PasswordForgetter interface {
	ForgotPassword(ctx context.Context, email string) error
}

// NewForgotPasswordHandler returns an HTTP handler that emails a password
// reset link. Unknown emails get the same success response as known ones.
// @Summary Request a password reset link
// @Description Stores a reset token on the account and emails the reset link. Does not reveal whether the email is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotPasswordRequest body models.ForgotPasswordRequest true "Forgot Password Request"
// @Success 200 {object} models.MessageResponse "Reset link sent if the email is registered"
// @Failure 400 {object} models.ErrorResponse "Invalid email"
// @Failure 500 {object} models.ErrorResponse "Mail delivery failed"
// @Router /forgot-password [post]
func NewForgotPasswordHandler(svc PasswordForgetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ForgotPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if err := svc.ForgotPassword(r.Context(), req.Email); err != nil {
			var valErr *validation.ValidationError
			switch {
			case errors.As(err, &valErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: valErr.Error(),
				})
			case errors.Is(err, services.ErrMailDelivery):
				logger.Log.Errorw("reset mail delivery failed", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "Failed to send password reset email",
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
			Message: "If the email is registered, a reset link has been sent",
		})
	}
}
