package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token fails signature, issuer,
	// audience or expiry checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingAuthHeader is returned when the Authorization header is absent.
	ErrMissingAuthHeader = errors.New("authorization header missing")
	// ErrInvalidAuthHeader is returned for a malformed Authorization header.
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
)

// Claims is the fixed claim set carried by issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
}

// JWT issues and parses signed HS256 tokens.
type JWT struct {
	secretKey string
	issuer    string
	audience  string
	exp       time.Duration
}

// Opt configures a JWT instance.
type Opt func(*JWT)

// WithSecretKey sets the signing secret.
func WithSecretKey(secret string) Opt {
	return func(j *JWT) { j.secretKey = secret }
}

// WithIssuer sets the iss claim written and verified.
func WithIssuer(issuer string) Opt {
	return func(j *JWT) { j.issuer = issuer }
}

// WithAudience sets the aud claim written and verified.
func WithAudience(audience string) Opt {
	return func(j *JWT) { j.audience = audience }
}

// WithExpiration sets the token lifetime.
func WithExpiration(exp time.Duration) Opt {
	return func(j *JWT) { j.exp = exp }
}

// New creates a new JWT instance.
func New(opts ...Opt) *JWT {
	j := &JWT{exp: time.Hour}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate signs a token for the given user and returns it together with its
// absolute expiry.
func (j *JWT) Generate(ctx context.Context, userID int64, username, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.exp)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: username,
		UserID:   userID,
		Role:     role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// GetClaims parses the token string and returns its claims if valid.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(j.secretKey), nil
		},
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Validate checks the token signature, issuer, audience and expiry.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetClaims(ctx, tokenString)
	return err
}

// GetTokenFromRequest extracts the token string from the Authorization header.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrInvalidAuthHeader
	}

	return parts[1], nil
}
