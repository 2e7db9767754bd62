package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/ekarabulut/social-wall/internal/models"
)

// ResetTokenValidator defines the interface that the token validation service must implement.
type ResetTokenValidator interface {
	ValidateResetToken(ctx context.Context, token string) (bool, error)
}

// NewValidateResetTokenHandler returns an HTTP handler reporting whether a
// reset token is still usable. It never mutates state.
// @Summary Validate a password reset token
// @Description Reports whether a reset token matches an account and has not expired
// @Tags auth
// @Accept json
// @Produce json
// @Param validateResetTokenRequest body models.ValidateResetTokenRequest true "Validate Reset Token Request"
// @Success 200 {object} models.ValidateResetTokenResponse "Token validity"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Router /validate-reset-token [post]
func NewValidateResetTokenHandler(svc ResetTokenValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ValidateResetTokenRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		valid, err := svc.ValidateResetToken(r.Context(), req.Token)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.ValidateResetTokenResponse{
			Valid: valid,
		})
	}
}
