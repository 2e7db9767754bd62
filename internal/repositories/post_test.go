package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_SaveAndList(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userWrite := NewUserWriteRepository(db)
	writeRepo := NewPostWriteRepository(db)
	readRepo := NewPostReadRepository(db)
	ctx := context.Background()

	adaID := saveUser(t, userWrite, "ada", "ada@example.com")
	graceID := saveUser(t, userWrite, "grace", "grace@example.com")

	first, err := writeRepo.Save(ctx, adaID, "first", nil)
	require.NoError(t, err)
	assert.Equal(t, adaID, first.UserID)
	assert.True(t, first.IsActive)

	image := "aW1n"
	second, err := writeRepo.Save(ctx, graceID, "second", &image)
	require.NoError(t, err)
	require.NotNil(t, second.ImageData)
	assert.Equal(t, image, *second.ImageData)

	t.Run("GetAllNewestFirst", func(t *testing.T) {
		posts, err := readRepo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "second", posts[0].Text)
		assert.Equal(t, "grace", posts[0].Username)
		assert.Equal(t, "first", posts[1].Text)
		assert.Equal(t, "ada", posts[1].Username)
	})

	t.Run("GetByUserID", func(t *testing.T) {
		posts, err := readRepo.GetByUserID(ctx, adaID)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "first", posts[0].Text)
	})

	t.Run("SoftDeletedExcluded", func(t *testing.T) {
		adminRepo := NewAdminRepository(db)
		found, err := adminRepo.DeletePost(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, found)

		posts, err := readRepo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "second", posts[0].Text)

		posts, err = readRepo.GetByUserID(ctx, adaID)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}
