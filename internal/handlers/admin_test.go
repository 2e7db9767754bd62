package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/ekarabulut/social-wall/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestAdminLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAdminLoginer(ctrl)
	expiry := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name: "success",
			inputBody: models.LoginRequest{
				Username: "root",
				Password: "Secret1!",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "root", "Secret1!").
					Return(&models.LoginResult{Token: "JWT_TOKEN", Expiry: expiry, Role: models.RoleAdmin}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &models.LoginResponse{
				Token:  "JWT_TOKEN",
				Expiry: expiry,
				Role:   models.RoleAdmin,
			},
		},
		{
			name: "non-admin rejected",
			inputBody: models.LoginRequest{
				Username: "ada",
				Password: "Secret1!",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "ada", "Secret1!").
					Return(nil, services.ErrAccessDenied)
			},
			expectedCode: http.StatusForbidden,
			expectedBody: &models.ErrorResponse{
				Error: "Admin privileges required",
			},
		},
		{
			name: "wrong credentials",
			inputBody: models.LoginRequest{
				Username: "root",
				Password: "wrong",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "root", "wrong").
					Return(nil, services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: &models.ErrorResponse{
				Error: "Invalid username or password",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			bodyBytes, _ := json.Marshal(tt.inputBody)
			req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(bodyBytes))
			rec := httptest.NewRecorder()

			NewAdminLoginHandler(mockSvc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			expected, _ := json.Marshal(tt.expectedBody)
			assert.JSONEq(t, string(expected), rec.Body.String())
		})
	}
}

func TestAdminListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAdminModerator(ctrl)
	createdAt := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	users := []models.AdminUserResponse{
		{ID: 1, Username: "ada", Role: models.RoleUser, IsActive: true, CreatedAt: createdAt},
		{ID: 2, Username: "root", Role: models.RoleAdmin, IsActive: true, CreatedAt: createdAt},
	}
	mockSvc.EXPECT().ListUsers(gomock.Any()).Return(users, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()

	NewAdminListUsersHandler(mockSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	expected, _ := json.Marshal(users)
	assert.JSONEq(t, string(expected), rec.Body.String())
}

func TestAdminDeactivateUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAdminModerator(ctrl)

	router := chi.NewRouter()
	router.Delete("/admin/users/{id}", NewAdminDeactivateUserHandler(mockSvc))

	tests := []struct {
		name         string
		target       string
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name:   "success",
			target: "/admin/users/1",
			mockSetup: func() {
				mockSvc.EXPECT().DeactivateUser(gomock.Any(), int64(1)).Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &models.MessageResponse{
				Message: "User deactivated successfully",
			},
		},
		{
			name:   "user not found",
			target: "/admin/users/9",
			mockSetup: func() {
				mockSvc.EXPECT().DeactivateUser(gomock.Any(), int64(9)).Return(services.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: &models.ErrorResponse{
				Error: "User not found",
			},
		},
		{
			name:         "invalid id",
			target:       "/admin/users/abc",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &models.ErrorResponse{
				Error: "invalid id",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodDelete, tt.target, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			expected, _ := json.Marshal(tt.expectedBody)
			assert.JSONEq(t, string(expected), rec.Body.String())
		})
	}
}

func TestAdminToggleUserStatusHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAdminModerator(ctrl)

	router := chi.NewRouter()
	router.Put("/admin/users/{id}/toggle", NewAdminToggleUserStatusHandler(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().ToggleUserStatus(gomock.Any(), int64(1)).Return(nil)

		req := httptest.NewRequest(http.MethodPut, "/admin/users/1/toggle", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("user not found", func(t *testing.T) {
		mockSvc.EXPECT().ToggleUserStatus(gomock.Any(), int64(9)).Return(services.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodPut, "/admin/users/9/toggle", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminDeletePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAdminModerator(ctrl)

	router := chi.NewRouter()
	router.Delete("/admin/posts/{id}", NewAdminDeletePostHandler(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().DeletePost(gomock.Any(), int64(10)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/admin/posts/10", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("post not found", func(t *testing.T) {
		mockSvc.EXPECT().DeletePost(gomock.Any(), int64(99)).Return(services.ErrPostNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/admin/posts/99", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminListPostsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAdminModerator(ctrl)
	createdAt := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	posts := []models.PostResponse{
		{ID: 10, Text: "hello", UserID: 1, Username: "ada", CreatedAt: createdAt},
	}
	mockSvc.EXPECT().ListAllPosts(gomock.Any()).Return(posts, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	rec := httptest.NewRecorder()

	NewAdminListPostsHandler(mockSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	expected, _ := json.Marshal(posts)
	assert.JSONEq(t, string(expected), rec.Body.String())
}
