package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/redis/go-redis/v9"
)

// LoginAttemptRepository counts failed login attempts per username in Redis.
// The counter expires after the configured window; once it reaches the limit
// the account is considered locked until the window lapses.
type LoginAttemptRepository struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginAttemptRepository creates a new repository with the given lockout
// threshold and window.
func NewLoginAttemptRepository(client *redis.Client, limit int64, window time.Duration) *LoginAttemptRepository {
	return &LoginAttemptRepository{
		client: client,
		limit:  limit,
		window: window,
	}
}

func attemptKey(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}

// Increment records a failed attempt and returns the current count. The
// expiry is set when the first attempt of a window is recorded.
func (r *LoginAttemptRepository) Increment(ctx context.Context, username string) (int64, error) {
	key := attemptKey(username)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("redis",
			"key", key,
			"error", err,
		)
		return 0, err
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			logger.Log.Infow("redis",
				"key", key,
				"error", err,
			)
			return count, err
		}
	}

	logger.Log.Infow("redis",
		"key", key,
		"result", count,
		"error", nil,
	)

	return count, nil
}

// IsLocked reports whether the username has reached the failure limit within
// the current window.
func (r *LoginAttemptRepository) IsLocked(ctx context.Context, username string) (bool, error) {
	key := attemptKey(username)

	count, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		logger.Log.Infow("redis",
			"key", key,
			"error", err,
		)
		return false, err
	}

	locked := count >= r.limit

	logger.Log.Infow("redis",
		"key", key,
		"result", locked,
		"error", nil,
	)

	return locked, nil
}

// Reset clears the failure counter after a successful login.
func (r *LoginAttemptRepository) Reset(ctx context.Context, username string) error {
	key := attemptKey(username)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("redis",
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}
