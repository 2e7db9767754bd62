package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/ekarabulut/social-wall/internal/middlewares"
	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/jmoiron/sqlx"
)

// AdminRepository provides the moderation views and soft-delete operations
// used by the admin dashboard. The user/profile/post cascade is written out
// as explicit UPDATEs so every write stays auditable; mutating calls run
// inside the request transaction when one is present in the context.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) ext(ctx context.Context) sqlx.ExtContext {
	if tx := middlewares.GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// GetAllUsers returns every user joined with its profile, including
// deactivated ones.
func (r *AdminRepository) GetAllUsers(ctx context.Context) ([]models.AdminUserDB, error) {
	const query = `
		SELECT u.id, u.username, p.first_name, p.last_name, p.email, p.phone,
		       p.role, u.is_active, u.created_at, u.deleted_at
		FROM users u
		JOIN user_profiles p ON p.user_id = u.id
		ORDER BY u.created_at DESC
	`

	users := []models.AdminUserDB{}
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetAllPosts returns every post with its author, active or not.
func (r *AdminRepository) GetAllPosts(ctx context.Context) ([]models.PostWithAuthorDB, error) {
	const query = `
		SELECT p.id, p.user_id, u.username, p.text, p.image_data, p.is_active, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`

	posts := []models.PostWithAuthorDB{}
	err := r.db.SelectContext(ctx, &posts, query)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeactivateUser soft-deletes a user and cascades the inactive flag to the
// profile and all the user's posts. Returns false if the user does not exist.
func (r *AdminRepository) DeactivateUser(ctx context.Context, id int64) (bool, error) {
	const userQuery = `
		UPDATE users
		SET is_active = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`
	const profileQuery = `
		UPDATE user_profiles
		SET is_active = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE user_id = $1
	`
	const postsQuery = `
		UPDATE posts
		SET is_active = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE user_id = $1
	`

	found, err := r.exec(ctx, userQuery, id)
	if err != nil || !found {
		return found, err
	}
	if _, err := r.exec(ctx, profileQuery, id); err != nil {
		return false, err
	}
	if _, err := r.exec(ctx, postsQuery, id); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleUserStatus flips the user's active flag and cascades it to the
// profile and the user's posts. Returns false if the user does not exist.
func (r *AdminRepository) ToggleUserStatus(ctx context.Context, id int64) (bool, error) {
	const selectQuery = `SELECT is_active FROM users WHERE id = $1 LIMIT 1`

	var isActive bool
	if err := sqlx.GetContext(ctx, r.ext(ctx), &isActive, selectQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	newActive := !isActive
	var deletedAt *time.Time
	if !newActive {
		now := time.Now().UTC()
		deletedAt = &now
	}

	const userQuery = `
		UPDATE users
		SET is_active = $2, deleted_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	const profileQuery = `
		UPDATE user_profiles
		SET is_active = $2, deleted_at = $3, updated_at = NOW()
		WHERE user_id = $1
	`
	const postsQuery = `
		UPDATE posts
		SET is_active = $2, deleted_at = $3, updated_at = NOW()
		WHERE user_id = $1
	`

	for _, query := range []string{userQuery, profileQuery, postsQuery} {
		if _, err := r.exec(ctx, query, id, newActive, deletedAt); err != nil {
			return false, err
		}
	}
	return true, nil
}

// DeletePost soft-deletes a single post. Returns false if it does not exist.
func (r *AdminRepository) DeletePost(ctx context.Context, id int64) (bool, error) {
	const query = `
		UPDATE posts
		SET is_active = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, id)
}

func (r *AdminRepository) exec(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.ext(ctx).ExecContext(ctx, query, args...)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
