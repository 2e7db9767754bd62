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

const userColumns = `
	id, username, password_hash, previous_password_hash,
	reset_token, reset_token_expires_at,
	is_active, created_at, updated_at, deleted_at
`

// UserReadRepository provides read access to user and profile records.
type UserReadRepository struct {
	db *sqlx.DB
}

// NewUserReadRepository creates a new UserReadRepository.
func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

func (r *UserReadRepository) getUser(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns the non-deleted user with the given username, or nil.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 AND deleted_at IS NULL
		LIMIT 1
	`
	return r.getUser(ctx, query, username)
}

// GetByID returns the non-deleted user with the given id, or nil.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
		LIMIT 1
	`
	return r.getUser(ctx, query, id)
}

// GetByEmail returns the non-deleted user whose profile holds the given
// email, or nil.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT u.id, u.username, u.password_hash, u.previous_password_hash,
		       u.reset_token, u.reset_token_expires_at,
		       u.is_active, u.created_at, u.updated_at, u.deleted_at
		FROM users u
		JOIN user_profiles p ON p.user_id = u.id
		WHERE p.email = $1 AND u.deleted_at IS NULL
		LIMIT 1
	`
	return r.getUser(ctx, query, email)
}

// GetByResetToken returns the non-deleted user holding the given reset
// token, or nil. Expiry is not checked here.
func (r *UserReadRepository) GetByResetToken(ctx context.Context, token string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_token = $1 AND deleted_at IS NULL
		LIMIT 1
	`
	return r.getUser(ctx, query, token)
}

// Exists reports whether a non-deleted user with the given username exists.
func (r *UserReadRepository) Exists(ctx context.Context, username string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE username = $1 AND deleted_at IS NULL
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// GetProfileByUserID returns the profile of the given user, or nil.
func (r *UserReadRepository) GetProfileByUserID(ctx context.Context, userID int64) (*models.ProfileDB, error) {
	const query = `
		SELECT id, user_id, first_name, last_name, email, phone, role,
		       is_active, created_at, updated_at, deleted_at
		FROM user_profiles
		WHERE user_id = $1
		LIMIT 1
	`

	var profile models.ProfileDB
	err := r.db.GetContext(ctx, &profile, query, userID)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UserWriteRepository provides write access to user and profile records.
// Writes run inside the request transaction when one is present in the
// context.
type UserWriteRepository struct {
	db *sqlx.DB
}

// NewUserWriteRepository creates a new UserWriteRepository.
func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

func (r *UserWriteRepository) ext(ctx context.Context) sqlx.ExtContext {
	if tx := middlewares.GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// Save inserts a user together with its profile and returns the new user id.
func (r *UserWriteRepository) Save(ctx context.Context, username, passwordHash string, profile models.ProfileDB) (int64, error) {
	const userQuery = `
		INSERT INTO users (username, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, TRUE, NOW(), NOW())
		RETURNING id
	`
	const profileQuery = `
		INSERT INTO user_profiles
			(user_id, first_name, last_name, email, phone, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
	`

	e := r.ext(ctx)

	var userID int64
	err := sqlx.GetContext(ctx, e, &userID, userQuery, username, passwordHash)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(userQuery), " "),
		"args", []any{username},
		"result", userID,
		"error", err,
	)
	if err != nil {
		return 0, err
	}

	args := []any{userID, profile.FirstName, profile.LastName, profile.Email, profile.Phone, profile.Role}
	_, err = e.ExecContext(ctx, profileQuery, args...)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(profileQuery), " "),
		"args", args,
		"error", err,
	)
	if err != nil {
		return 0, err
	}

	return userID, nil
}

// UpdatePassword shifts the current hash into previous and stores the new one.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash, previousPasswordHash string) error {
	const query = `
		UPDATE users
		SET previous_password_hash = $2,
		    password_hash = $3,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.exec(ctx, query, userID, previousPasswordHash, passwordHash)
}

// SetResetToken stores the reset token and its expiry as a pair.
func (r *UserWriteRepository) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	const query = `
		UPDATE users
		SET reset_token = $2,
		    reset_token_expires_at = $3,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.exec(ctx, query, userID, token, expiresAt)
}

// ClearResetToken clears the reset token and its expiry as a pair.
func (r *UserWriteRepository) ClearResetToken(ctx context.Context, userID int64) error {
	const query = `
		UPDATE users
		SET reset_token = NULL,
		    reset_token_expires_at = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.exec(ctx, query, userID)
}

// UpdateProfile updates the user's username and the profile display fields.
func (r *UserWriteRepository) UpdateProfile(ctx context.Context, userID int64, username, firstName, lastName, email, phone string) error {
	const userQuery = `
		UPDATE users
		SET username = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	const profileQuery = `
		UPDATE user_profiles
		SET first_name = $2, last_name = $3, email = $4, phone = $5, updated_at = NOW()
		WHERE user_id = $1
	`

	if err := r.exec(ctx, userQuery, userID, username); err != nil {
		return err
	}
	return r.exec(ctx, profileQuery, userID, firstName, lastName, email, phone)
}

func (r *UserWriteRepository) exec(ctx context.Context, query string, args ...any) error {
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

	return err
}
