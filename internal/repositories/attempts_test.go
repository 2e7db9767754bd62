package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestLoginAttemptRepository(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	require.NoError(t, err)

	repo := NewLoginAttemptRepository(rdb, 3, 2*time.Second)

	t.Run("Locks after the limit", func(t *testing.T) {
		locked, err := repo.IsLocked(ctx, "ada")
		require.NoError(t, err)
		assert.False(t, locked)

		for i := 0; i < 3; i++ {
			_, err := repo.Increment(ctx, "ada")
			require.NoError(t, err)
		}

		locked, err = repo.IsLocked(ctx, "ada")
		require.NoError(t, err)
		assert.True(t, locked)
	})

	t.Run("Reset clears the counter", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := repo.Increment(ctx, "grace")
			require.NoError(t, err)
		}

		err := repo.Reset(ctx, "grace")
		require.NoError(t, err)

		locked, err := repo.IsLocked(ctx, "grace")
		require.NoError(t, err)
		assert.False(t, locked)
	})

	t.Run("Lockout expires with the window", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := repo.Increment(ctx, "linus")
			require.NoError(t, err)
		}

		locked, err := repo.IsLocked(ctx, "linus")
		require.NoError(t, err)
		assert.True(t, locked)

		// Wait for the window (2s) to lapse.
		time.Sleep(3 * time.Second)

		locked, err = repo.IsLocked(ctx, "linus")
		require.NoError(t, err)
		assert.False(t, locked)
	})
}
