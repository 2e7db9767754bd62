package repositories

import (
	"context"
	"strings"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/ekarabulut/social-wall/internal/middlewares"
	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/jmoiron/sqlx"
)

// PostReadRepository provides read access to the post feed.
type PostReadRepository struct {
	db *sqlx.DB
}

// NewPostReadRepository creates a new PostReadRepository.
func NewPostReadRepository(db *sqlx.DB) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// GetAll returns all active posts with their author, newest first.
func (r *PostReadRepository) GetAll(ctx context.Context) ([]models.PostWithAuthorDB, error) {
	const query = `
		SELECT p.id, p.user_id, u.username, p.text, p.image_data, p.is_active, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.is_active AND p.deleted_at IS NULL
		ORDER BY p.created_at DESC
	`
	return r.listPosts(ctx, query)
}

// GetByUserID returns the user's active posts, newest first.
func (r *PostReadRepository) GetByUserID(ctx context.Context, userID int64) ([]models.PostWithAuthorDB, error) {
	const query = `
		SELECT p.id, p.user_id, u.username, p.text, p.image_data, p.is_active, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1 AND p.is_active AND p.deleted_at IS NULL
		ORDER BY p.created_at DESC
	`
	return r.listPosts(ctx, query, userID)
}

func (r *PostReadRepository) listPosts(ctx context.Context, query string, args ...any) ([]models.PostWithAuthorDB, error) {
	posts := []models.PostWithAuthorDB{}
	err := r.db.SelectContext(ctx, &posts, query, args...)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return posts, nil
}

// PostWriteRepository provides write access to post records. Writes run
// inside the request transaction when one is present in the context.
type PostWriteRepository struct {
	db *sqlx.DB
}

// NewPostWriteRepository creates a new PostWriteRepository.
func NewPostWriteRepository(db *sqlx.DB) *PostWriteRepository {
	return &PostWriteRepository{db: db}
}

func (r *PostWriteRepository) ext(ctx context.Context) sqlx.ExtContext {
	if tx := middlewares.GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// Save inserts a new post and returns it as stored.
func (r *PostWriteRepository) Save(ctx context.Context, userID int64, text string, imageData *string) (*models.PostDB, error) {
	const query = `
		INSERT INTO posts (user_id, text, image_data, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())
		RETURNING id, user_id, text, image_data, is_active, created_at, updated_at, deleted_at
	`
	args := []any{userID, text, imageData}

	var post models.PostDB
	err := sqlx.GetContext(ctx, r.ext(ctx), &post, query, args...)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, text},
		"result", post.ID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &post, nil
}
