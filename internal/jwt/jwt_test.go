package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New(
		WithSecretKey("test-secret"),
		WithIssuer("social-wall"),
		WithAudience("social-wall-web"),
		WithExpiration(time.Minute),
	)

	ctx := context.Background()

	token, expiresAt, err := j.Generate(ctx, 42, "ada", "User")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 5*time.Second)

	// Valid token should pass validation
	err = j.Validate(ctx, token)
	assert.NoError(t, err)

	// Extract claims
	claims, err := j.GetClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "ada", claims.Subject)
	assert.Equal(t, "User", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(
		WithSecretKey("test-secret"),
		WithIssuer("social-wall"),
		WithAudience("social-wall-web"),
		WithExpiration(-time.Minute), // already expired
	)

	ctx := context.Background()

	token, _, err := j.Generate(ctx, 1, "bob", "User")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	err = j.Validate(ctx, token)
	assert.Error(t, err)

	claims, err := j.GetClaims(ctx, token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_TamperedToken(t *testing.T) {
	j := New(
		WithSecretKey("test-secret"),
		WithIssuer("social-wall"),
		WithAudience("social-wall-web"),
		WithExpiration(time.Minute),
	)
	ctx := context.Background()

	token, _, err := j.Generate(ctx, 1, "bob", "User")
	assert.NoError(t, err)

	// Token signed with a different secret must be rejected
	other := New(
		WithSecretKey("other-secret"),
		WithIssuer("social-wall"),
		WithAudience("social-wall-web"),
		WithExpiration(time.Minute),
	)
	assert.Error(t, other.Validate(ctx, token))

	// Altering the payload must break the signature
	tampered := token[:len(token)-4] + "AAAA"
	assert.Error(t, j.Validate(ctx, tampered))
}

func TestJWT_WrongIssuerOrAudience(t *testing.T) {
	ctx := context.Background()

	issued := New(
		WithSecretKey("test-secret"),
		WithIssuer("someone-else"),
		WithAudience("social-wall-web"),
		WithExpiration(time.Minute),
	)
	token, _, err := issued.Generate(ctx, 1, "bob", "User")
	assert.NoError(t, err)

	verifier := New(
		WithSecretKey("test-secret"),
		WithIssuer("social-wall"),
		WithAudience("social-wall-web"),
		WithExpiration(time.Minute),
	)
	assert.Error(t, verifier.Validate(ctx, token))
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New(WithSecretKey("test-secret"))
	ctx := context.Background()

	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "missing header", header: "", wantErr: ErrMissingAuthHeader},
		{name: "malformed header", header: "Token abc", wantErr: ErrInvalidAuthHeader},
		{name: "missing token part", header: "Bearer", wantErr: ErrInvalidAuthHeader},
		{name: "valid header", header: "Bearer sometoken", wantToken: "sometoken"},
		{name: "case insensitive scheme", header: "bearer sometoken", wantToken: "sometoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}
