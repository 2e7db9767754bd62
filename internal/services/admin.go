package services

import (
	"context"
	"errors"
	"time"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrAccessDenied is returned when a non-admin authenticates against the
// admin login.
var ErrAccessDenied = errors.New("access denied, admin privileges required")

// AdminStore defines the moderation operations backing the admin dashboard.
type AdminStore interface {
	GetAllUsers(ctx context.Context) ([]models.AdminUserDB, error)
	GetAllPosts(ctx context.Context) ([]models.PostWithAuthorDB, error)
	DeactivateUser(ctx context.Context, id int64) (bool, error)
	ToggleUserStatus(ctx context.Context, id int64) (bool, error)
	DeletePost(ctx context.Context, id int64) (bool, error)
}

// AdminService handles admin authentication and user/post moderation.
type AdminService struct {
	users       UserReader
	store       AdminStore
	jwt         TokenIssuer
	kafkaWriter KafkaWriter
}

// NewAdminService creates a new AdminService instance.
func NewAdminService(users UserReader, store AdminStore, jwt TokenIssuer, kafkaWriter KafkaWriter) *AdminService {
	return &AdminService{
		users:       users,
		store:       store,
		jwt:         jwt,
		kafkaWriter: kafkaWriter,
	}
}

// Login authenticates an administrator. Credential failures use the same
// generic error as the user login; an authenticated non-admin is rejected
// with ErrAccessDenied.
func (svc *AdminService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	user, err := svc.users.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		logger.Log.Errorw("invalid admin credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid admin credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	profile, err := svc.users.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to get profile", "err", err)
		return nil, err
	}
	if profile == nil || profile.Role != models.RoleAdmin {
		logger.Log.Errorw("admin access denied", "username", username)
		return nil, ErrAccessDenied
	}

	token, expiry, err := svc.jwt.Generate(ctx, user.ID, user.Username, models.RoleAdmin)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return nil, err
	}

	return &models.LoginResult{Token: token, Expiry: expiry, Role: models.RoleAdmin}, nil
}

// ListUsers returns every user with profile fields for the dashboard.
func (svc *AdminService) ListUsers(ctx context.Context) ([]models.AdminUserResponse, error) {
	users, err := svc.store.GetAllUsers(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	out := make([]models.AdminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, models.AdminUserResponse{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Phone:     u.Phone,
			Role:      u.Role,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
		})
	}
	return out, nil
}

// DeactivateUser soft-deletes a user and all their posts.
func (svc *AdminService) DeactivateUser(ctx context.Context, id int64) error {
	found, err := svc.store.DeactivateUser(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to deactivate user", "err", err)
		return err
	}
	if !found {
		return ErrUserNotFound
	}

	publishEvent(ctx, svc.kafkaWriter, models.Event{
		EventID:    uuid.NewString(),
		Type:       models.EventUserDeactivated,
		UserID:     id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ToggleUserStatus flips a user's active flag, cascading to their posts.
func (svc *AdminService) ToggleUserStatus(ctx context.Context, id int64) error {
	found, err := svc.store.ToggleUserStatus(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to toggle user status", "err", err)
		return err
	}
	if !found {
		return ErrUserNotFound
	}

	publishEvent(ctx, svc.kafkaWriter, models.Event{
		EventID:    uuid.NewString(),
		Type:       models.EventUserStatusToggled,
		UserID:     id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ListAllPosts returns every post for the moderation view.
func (svc *AdminService) ListAllPosts(ctx context.Context) ([]models.PostResponse, error) {
	posts, err := svc.store.GetAllPosts(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "err", err)
		return nil, err
	}
	return toPostResponses(posts), nil
}

// DeletePost soft-deletes a single post.
func (svc *AdminService) DeletePost(ctx context.Context, id int64) error {
	found, err := svc.store.DeletePost(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete post", "err", err)
		return err
	}
	if !found {
		return ErrPostNotFound
	}

	publishEvent(ctx, svc.kafkaWriter, models.Event{
		EventID:    uuid.NewString(),
		Type:       models.EventPostDeleted,
		PostID:     id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
