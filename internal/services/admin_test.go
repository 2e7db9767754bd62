package services

import (
	"context"
	"testing"
	"time"

	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	passwordHash := mustHash(t, "Secret1!")
	expiry := time.Now().Add(time.Hour)

	type testCase struct {
		name       string
		username   string
		password   string
		setupMocks func(users *MockUserReader, jwt *MockTokenIssuer)
		wantErr    error
	}

	tests := []testCase{
		{
			name:     "Success",
			username: "root",
			password: "Secret1!",
			setupMocks: func(users *MockUserReader, jwt *MockTokenIssuer) {
				users.EXPECT().GetByUsername(gomock.Any(), "root").
					Return(&models.UserDB{ID: 2, Username: "root", PasswordHash: passwordHash, IsActive: true}, nil)
				users.EXPECT().GetProfileByUserID(gomock.Any(), int64(2)).
					Return(&models.ProfileDB{Role: models.RoleAdmin}, nil)
				jwt.EXPECT().Generate(gomock.Any(), int64(2), "root", models.RoleAdmin).
					Return("token", expiry, nil)
			},
		},
		{
			name:     "NonAdminRejected",
			username: "ada",
			password: "Secret1!",
			setupMocks: func(users *MockUserReader, jwt *MockTokenIssuer) {
				users.EXPECT().GetByUsername(gomock.Any(), "ada").
					Return(&models.UserDB{ID: 1, Username: "ada", PasswordHash: passwordHash, IsActive: true}, nil)
				users.EXPECT().GetProfileByUserID(gomock.Any(), int64(1)).
					Return(&models.ProfileDB{Role: models.RoleUser}, nil)
			},
			wantErr: ErrAccessDenied,
		},
		{
			name:     "UnknownUsername",
			username: "ghost",
			password: "Secret1!",
			setupMocks: func(users *MockUserReader, jwt *MockTokenIssuer) {
				users.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "WrongPassword",
			username: "root",
			password: "wrong",
			setupMocks: func(users *MockUserReader, jwt *MockTokenIssuer) {
				users.EXPECT().GetByUsername(gomock.Any(), "root").
					Return(&models.UserDB{ID: 2, Username: "root", PasswordHash: passwordHash, IsActive: true}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "DeactivatedAdmin",
			username: "root",
			password: "Secret1!",
			setupMocks: func(users *MockUserReader, jwt *MockTokenIssuer) {
				users.EXPECT().GetByUsername(gomock.Any(), "root").
					Return(&models.UserDB{ID: 2, Username: "root", PasswordHash: passwordHash, IsActive: false}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := NewMockUserReader(ctrl)
			jwt := NewMockTokenIssuer(ctrl)
			tc.setupMocks(users, jwt)

			svc := NewAdminService(users, nil, jwt, nil)
			result, err := svc.Login(context.Background(), tc.username, tc.password)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, "token", result.Token)
			assert.Equal(t, models.RoleAdmin, result.Role)
		})
	}
}

func TestAdminService_ListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	createdAt := time.Now()
	store := NewMockAdminStore(ctrl)
	store.EXPECT().GetAllUsers(gomock.Any()).Return([]models.AdminUserDB{
		{ID: 1, Username: "ada", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: models.RoleUser, IsActive: true, CreatedAt: createdAt},
		{ID: 2, Username: "root", Role: models.RoleAdmin, IsActive: true, CreatedAt: createdAt},
	}, nil)

	svc := NewAdminService(nil, store, nil, nil)
	users, err := svc.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ada", users[0].Username)
	assert.Equal(t, models.RoleUser, users[0].Role)
	assert.Equal(t, models.RoleAdmin, users[1].Role)
}

func TestAdminService_DeactivateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Success", func(t *testing.T) {
		store := NewMockAdminStore(ctrl)
		kw := NewMockKafkaWriter(ctrl)
		store.EXPECT().DeactivateUser(gomock.Any(), int64(1)).Return(true, nil)
		kw.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		svc := NewAdminService(nil, store, nil, kw)
		assert.NoError(t, svc.DeactivateUser(context.Background(), 1))
	})

	t.Run("NotFound", func(t *testing.T) {
		store := NewMockAdminStore(ctrl)
		store.EXPECT().DeactivateUser(gomock.Any(), int64(9)).Return(false, nil)

		svc := NewAdminService(nil, store, nil, nil)
		assert.ErrorIs(t, svc.DeactivateUser(context.Background(), 9), ErrUserNotFound)
	})
}

func TestAdminService_ToggleUserStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Success", func(t *testing.T) {
		store := NewMockAdminStore(ctrl)
		kw := NewMockKafkaWriter(ctrl)
		store.EXPECT().ToggleUserStatus(gomock.Any(), int64(1)).Return(true, nil)
		kw.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		svc := NewAdminService(nil, store, nil, kw)
		assert.NoError(t, svc.ToggleUserStatus(context.Background(), 1))
	})

	t.Run("NotFound", func(t *testing.T) {
		store := NewMockAdminStore(ctrl)
		store.EXPECT().ToggleUserStatus(gomock.Any(), int64(9)).Return(false, nil)

		svc := NewAdminService(nil, store, nil, nil)
		assert.ErrorIs(t, svc.ToggleUserStatus(context.Background(), 9), ErrUserNotFound)
	})
}

func TestAdminService_DeletePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Success", func(t *testing.T) {
		store := NewMockAdminStore(ctrl)
		kw := NewMockKafkaWriter(ctrl)
		store.EXPECT().DeletePost(gomock.Any(), int64(10)).Return(true, nil)
		kw.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		svc := NewAdminService(nil, store, nil, kw)
		assert.NoError(t, svc.DeletePost(context.Background(), 10))
	})

	t.Run("NotFound", func(t *testing.T) {
		store := NewMockAdminStore(ctrl)
		store.EXPECT().DeletePost(gomock.Any(), int64(99)).Return(false, nil)

		svc := NewAdminService(nil, store, nil, nil)
		assert.ErrorIs(t, svc.DeletePost(context.Background(), 99), ErrPostNotFound)
	})
}

func TestAdminService_ListAllPosts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockAdminStore(ctrl)
	store.EXPECT().GetAllPosts(gomock.Any()).Return([]models.PostWithAuthorDB{
		{ID: 10, UserID: 1, Text: "hello", Username: "ada"},
	}, nil)

	svc := NewAdminService(nil, store, nil, nil)
	posts, err := svc.ListAllPosts(context.Background())

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Text)
	assert.Equal(t, "ada", posts[0].Username)
}
