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

// PostCreator defines the interface that the post creation service must implement.
type PostCreator interface {
	CreatePost(ctx context.Context, userID int64, req models.CreatePostRequest) (*models.PostResponse, error)
}

// PostLister defines the interface that the post listing service must implement.
type PostLister interface {
	ListPosts(ctx context.Context) ([]models.PostResponse, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]models.PostResponse, error)
}

// NewCreatePostHandler returns an HTTP handler for creating a post.
// @Summary Create a post
// @Description Stores a new post for the authenticated user
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createPostRequest body models.CreatePostRequest true "Create Post Request"
// @Success 201 {object} models.PostResponse "Created post"
// @Failure 400 {object} models.ErrorResponse "Validation failed"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /posts [post]
func NewCreatePostHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		var req models.CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		post, err := svc.CreatePost(r.Context(), claims.UserID, req)
		if err != nil {
			var valErr *validation.ValidationError
			switch {
			case errors.As(err, &valErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: valErr.Error(),
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

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(post)
	}
}

// NewListPostsHandler returns an HTTP handler for the public feed, newest
// first.
// @Summary List posts
// @Description Returns all active posts, newest first
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PostResponse "Posts"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /posts [get]
func NewListPostsHandler(svc PostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.ListPosts(r.Context())
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

// NewListMyPostsHandler returns an HTTP handler for the authenticated user's
// own posts.
// @Summary List own posts
// @Description Returns the authenticated user's active posts, newest first
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PostResponse "Posts"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /posts/my [get]
func NewListMyPostsHandler(svc PostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		posts, err := svc.ListPostsByUser(r.Context(), claims.UserID)
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
