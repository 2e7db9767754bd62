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

// ProfileGetter defines the interface that the profile read service must implement.
type ProfileGetter interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserProfileResponse, error)
}

// ProfileUpdater defines the interface that the profile update service must implement.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) error
}

// NewGetProfileHandler returns an HTTP handler for the authenticated user's
// profile.
// @Summary Get own profile
// @Description Returns the authenticated user's profile fields
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserProfileResponse "Profile"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /me [get]
func NewGetProfileHandler(svc ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		profile, err := svc.GetProfile(r.Context(), claims.UserID)
		if err != nil {
			switch {
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
		json.NewEncoder(w).Encode(profile)
	}
}

// NewUpdateProfileHandler returns an HTTP handler for updating the
// authenticated user's profile.
// @Summary Update own profile
// @Description Updates the authenticated user's display and contact attributes
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateProfileRequest body models.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} models.MessageResponse "Profile updated"
// @Failure 400 {object} models.ErrorResponse "Validation failed / username already exists"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /update-profile [put]
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		var req models.UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if err := svc.UpdateProfile(r.Context(), claims.UserID, req); err != nil {
			var valErr *validation.ValidationError
			switch {
			case errors.As(err, &valErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: valErr.Error(),
				})
			case errors.Is(err, services.ErrUserAlreadyExists):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "Username already exists",
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
			Message: "Profile updated successfully",
		})
	}
}
