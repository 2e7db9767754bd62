package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/ekarabulut/social-wall/internal/services"
	"github.com/go-chi/chi/v5"
)

// AdminLoginer defines the interface that the admin login service must implement.
type AdminLoginer interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
}

// AdminModerator defines the interface that the moderation service must implement.
type AdminModerator interface {
	ListUsers(ctx context.Context) ([]models.AdminUserResponse, error)
	ListAllPosts(ctx context.Context) ([]models.PostResponse, error)
	DeactivateUser(ctx context.Context, id int64) error
	ToggleUserStatus(ctx context.Context, id int64) error
	DeletePost(ctx context.Context, id int64) error
}

// NewAdminLoginHandler returns an HTTP handler for administrator login.
// @Summary Admin login
// @Description Authenticate an administrator and return a JWT token. Non-admin accounts are rejected.
// @Tags admin
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse "JWT token returned"
// @Failure 401 {object} models.ErrorResponse "Invalid username or password"
// @Failure 403 {object} models.ErrorResponse "Admin privileges required"
// @Router /admin/login [post]
func NewAdminLoginHandler(svc AdminLoginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		result, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "Invalid username or password",
				})
			case errors.Is(err, services.ErrAccessDenied):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "Admin privileges required",
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
		json.NewEncoder(w).Encode(models.LoginResponse{
			Token:  result.Token,
			Expiry: result.Expiry,
			Role:   result.Role,
		})
	}
}

// NewAdminListUsersHandler returns an HTTP handler for the user dashboard.
// @Summary List all users
// @Description Returns every user with profile fields for moderation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AdminUserResponse "Users"
// @Failure 403 {object} models.ErrorResponse "Admin privileges required"
// @Router /admin/users [get]
func NewAdminListUsersHandler(svc AdminModerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(users)
	}
}

// NewAdminDeactivateUserHandler returns an HTTP handler that soft-deletes a
// user and all their posts.
// @Summary Deactivate a user
// @Description Soft-deletes the user, its profile and all its posts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} models.MessageResponse "User deactivated"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func NewAdminDeactivateUserHandler(svc AdminModerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := svc.DeactivateUser(r.Context(), id); err != nil {
			writeModerationError(w, err, "User not found")
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.MessageResponse{
			Message: "User deactivated successfully",
		})
	}
}

// NewAdminToggleUserStatusHandler returns an HTTP handler that flips a
// user's active flag.
// @Summary Toggle a user's status
// @Description Flips the user's active flag, cascading to profile and posts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} models.MessageResponse "Status toggled"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /admin/users/{id}/toggle [put]
func NewAdminToggleUserStatusHandler(svc AdminModerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := svc.ToggleUserStatus(r.Context(), id); err != nil {
			writeModerationError(w, err, "User not found")
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.MessageResponse{
			Message: "User status toggled successfully",
		})
	}
}

// NewAdminListPostsHandler returns an HTTP handler for the moderation post
// view.
// @Summary List all posts
// @Description Returns every post for moderation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PostResponse "Posts"
// @Failure 403 {object} models.ErrorResponse "Admin privileges required"
// @Router /admin/posts [get]
func NewAdminListPostsHandler(svc AdminModerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.ListAllPosts(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(posts)
	}
}

// NewAdminDeletePostHandler returns an HTTP handler that soft-deletes a post.
// @Summary Delete a post
// @Description Soft-deletes a single post
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Success 200 {object} models.MessageResponse "Post deleted"
// @Failure 404 {object} models.ErrorResponse "Post not found"
// @Router /admin/posts/{id} [delete]
func NewAdminDeletePostHandler(svc AdminModerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := svc.DeletePost(r.Context(), id); err != nil {
			writeModerationError(w, err, "Post not found")
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.MessageResponse{
			Message: "Post deleted successfully",
		})
	}
}

// pathID parses the chi {id} URL parameter, answering 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Error: "invalid id",
		})
		return 0, false
	}
	return id, true
}

func writeModerationError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrPostNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Error: notFoundMsg,
		})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Error: "Internal server error",
		})
	}
}
