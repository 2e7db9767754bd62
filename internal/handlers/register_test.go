package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/ekarabulut/social-wall/internal/services"
	"github.com/ekarabulut/social-wall/internal/validation"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func validRegisterBody() models.RegisterRequest {
	return models.RegisterRequest{
		FirstName:            "Ada",
		LastName:             "Lovelace",
		Username:             "ada",
		Password:             "Secret1!",
		PasswordConfirmation: "Secret1!",
		Email:                "ada@example.com",
	}
}

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRegisterer(ctrl)

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name:      "success",
			inputBody: validRegisterBody(),
			mockSetup: func() {
				mockSvc.EXPECT().
					Register(gomock.Any(), validRegisterBody()).
					Return(nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: &models.RegisterResponse{
				Message: "User registered successfully",
			},
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &models.ErrorResponse{
				Error: "invalid request body",
			},
		},
		{
			name:      "username already exists",
			inputBody: validRegisterBody(),
			mockSetup: func() {
				mockSvc.EXPECT().
					Register(gomock.Any(), validRegisterBody()).
					Return(services.ErrUserAlreadyExists)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: &models.ErrorResponse{
				Error: "Username already exists",
			},
		},
		{
			name:      "validation failure",
			inputBody: validRegisterBody(),
			mockSetup: func() {
				mockSvc.EXPECT().
					Register(gomock.Any(), validRegisterBody()).
					Return(&validation.ValidationError{Messages: []string{"passwords do not match"}})
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: &models.ErrorResponse{
				Error: "validation failed: passwords do not match",
			},
		},
		{
			name:      "internal error",
			inputBody: validRegisterBody(),
			mockSetup: func() {
				mockSvc.EXPECT().
					Register(gomock.Any(), validRegisterBody()).
					Return(errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: &models.ErrorResponse{
				Error: "Internal server error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var bodyBytes []byte
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(bodyBytes))
			rec := httptest.NewRecorder()

			NewRegisterHandler(mockSvc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			expected, _ := json.Marshal(tt.expectedBody)
			assert.JSONEq(t, string(expected), rec.Body.String())
		})
	}
}
