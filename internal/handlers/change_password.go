package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/ekarabulut/social-wall/internal/middlewares"
	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/ekarabulut/social-wall/internal/services"
	"github.com/ekarabulut/social-wall/internal/validation"
)

// PasswordChanger defines the interface that the password change service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
}

// NewChangePasswordHandler returns an HTTP handler for rotating the password
// of the authenticated user.
// @Summary Change password
// @Description Rotates the authenticated user's password. The new password must differ from the current and previous one.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param changePasswordRequest body models.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} models.MessageResponse "Password changed"
// @Failure 400 {object} models.ErrorResponse "Validation failed / password reuse"
// @Failure 401 {object} models.ErrorResponse "Current password is wrong"
// @Router /change-password [put]
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		var req models.ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if err := svc.ChangePassword(r.Context(), claims.UserID, req); err != nil {
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
			case errors.Is(err, services.ErrInvalidCredentials):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "Current password is wrong",
				})
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "User not found",
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
			Message: "Password changed successfully",
		})
	}
}
