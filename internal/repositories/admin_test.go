package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRepository_GetAllUsers(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userWrite := NewUserWriteRepository(db)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	saveUser(t, userWrite, "ada", "ada@example.com")
	saveUser(t, userWrite, "grace", "grace@example.com")

	users, err := repo.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ada", users[0].FirstName)
	assert.Equal(t, models.RoleUser, users[0].Role)
	assert.True(t, users[0].IsActive)
}

func TestAdminRepository_DeactivateUser(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userWrite := NewUserWriteRepository(db)
	postWrite := NewPostWriteRepository(db)
	postRead := NewPostReadRepository(db)
	userRead := NewUserReadRepository(db)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	id := saveUser(t, userWrite, "ada", "ada@example.com")
	_, err := postWrite.Save(ctx, id, "post", nil)
	require.NoError(t, err)

	found, err := repo.DeactivateUser(ctx, id)
	require.NoError(t, err)
	assert.True(t, found)

	// Deactivation soft-deletes, so the user is gone from the read repository.
	user, err := userRead.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, user)

	var row struct {
		IsActive  bool       `db:"is_active"`
		DeletedAt *time.Time `db:"deleted_at"`
	}
	err = db.Get(&row, "SELECT is_active, deleted_at FROM users WHERE id = $1", id)
	require.NoError(t, err)
	assert.False(t, row.IsActive)
	assert.NotNil(t, row.DeletedAt)

	// The user's posts disappear from the feed in the same transaction.
	posts, err := postRead.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	t.Run("UnknownUser", func(t *testing.T) {
		found, err := repo.DeactivateUser(ctx, 9999)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestAdminRepository_ToggleUserStatus(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userWrite := NewUserWriteRepository(db)
	postWrite := NewPostWriteRepository(db)
	postRead := NewPostReadRepository(db)
	userRead := NewUserReadRepository(db)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	id := saveUser(t, userWrite, "ada", "ada@example.com")
	_, err := postWrite.Save(ctx, id, "post", nil)
	require.NoError(t, err)

	// First toggle deactivates; the user disappears from the read repository.
	found, err := repo.ToggleUserStatus(ctx, id)
	require.NoError(t, err)
	assert.True(t, found)

	user, err := userRead.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, user)

	posts, err := postRead.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	// Second toggle restores the user and their posts.
	found, err = repo.ToggleUserStatus(ctx, id)
	require.NoError(t, err)
	assert.True(t, found)

	user, err = userRead.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.DeletedAt)

	posts, err = postRead.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	t.Run("UnknownUser", func(t *testing.T) {
		found, err := repo.ToggleUserStatus(ctx, 9999)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestAdminRepository_GetAllPosts(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userWrite := NewUserWriteRepository(db)
	postWrite := NewPostWriteRepository(db)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	id := saveUser(t, userWrite, "ada", "ada@example.com")
	post, err := postWrite.Save(ctx, id, "post", nil)
	require.NoError(t, err)

	// Soft-deleted posts stay visible in the moderation view.
	found, err := repo.DeletePost(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, found)

	posts, err := repo.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "ada", posts[0].Username)
	assert.False(t, posts[0].IsActive)
}
