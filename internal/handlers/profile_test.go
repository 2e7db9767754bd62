package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ekarabulut/social-wall/internal/jwt"
	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/ekarabulut/social-wall/internal/services"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestGetProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockProfileGetter(ctrl)
	claims := &jwt.Claims{UserID: 1, Username: "ada", Role: models.RoleUser}
	createdAt := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name         string
		claims       *jwt.Claims
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name:   "success",
			claims: claims,
			mockSetup: func() {
				mockSvc.EXPECT().
					GetProfile(gomock.Any(), int64(1)).
					Return(&models.UserProfileResponse{
						ID:        1,
						FirstName: "Ada",
						LastName:  "Lovelace",
						Username:  "ada",
						Email:     "ada@example.com",
						Role:      models.RoleUser,
						CreatedAt: createdAt,
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &models.UserProfileResponse{
				ID:        1,
				FirstName: "Ada",
				LastName:  "Lovelace",
				Username:  "ada",
				Email:     "ada@example.com",
				Role:      models.RoleUser,
				CreatedAt: createdAt,
			},
		},
		{
			name:         "missing claims",
			claims:       nil,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedBody: &models.ErrorResponse{
				Error: "Unauthorized",
			},
		},
		{
			name:   "user not found",
			claims: claims,
			mockSetup: func() {
				mockSvc.EXPECT().
					GetProfile(gomock.Any(), int64(1)).
					Return(nil, services.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: &models.ErrorResponse{
				Error: "User not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := authedRequest(http.MethodGet, "/me", nil, tt.claims)
			rec := httptest.NewRecorder()

			NewGetProfileHandler(mockSvc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			expected, _ := json.Marshal(tt.expectedBody)
			assert.JSONEq(t, string(expected), rec.Body.String())
		})
	}
}

func TestUpdateProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockProfileUpdater(ctrl)
	claims := &jwt.Claims{UserID: 1, Username: "ada", Role: models.RoleUser}

	updateReq := models.UpdateProfileRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada2",
		Email:     "ada@example.com",
	}

	tests := []struct {
		name         string
		claims       *jwt.Claims
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name:   "success",
			claims: claims,
			mockSetup: func() {
				mockSvc.EXPECT().
					UpdateProfile(gomock.Any(), int64(1), updateReq).
					Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &models.MessageResponse{
				Message: "Profile updated successfully",
			},
		},
		{
			name:   "username taken",
			claims: claims,
			mockSetup: func() {
				mockSvc.EXPECT().
					UpdateProfile(gomock.Any(), int64(1), updateReq).
					Return(services.ErrUserAlreadyExists)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: &models.ErrorResponse{
				Error: "Username already exists",
			},
		},
		{
			name:         "missing claims",
			claims:       nil,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedBody: &models.ErrorResponse{
				Error: "Unauthorized",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			bodyBytes, _ := json.Marshal(updateReq)
			req := authedRequest(http.MethodPut, "/update-profile", bodyBytes, tt.claims)
			rec := httptest.NewRecorder()

			NewUpdateProfileHandler(mockSvc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			expected, _ := json.Marshal(tt.expectedBody)
			assert.JSONEq(t, string(expected), rec.Body.String())
		})
	}
}
