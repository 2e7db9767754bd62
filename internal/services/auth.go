package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/ekarabulut/social-wall/internal/validation"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("too many failed login attempts, try again later")
	ErrPasswordReuse      = errors.New("new password cannot be the same as a previous password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrMailDelivery       = errors.New("failed to send password reset email")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByResetToken(ctx context.Context, token string) (*models.UserDB, error)
	Exists(ctx context.Context, username string) (bool, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.ProfileDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, passwordHash string, profile models.ProfileDB) (int64, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash, previousPasswordHash string) error
	SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID int64) error
	UpdateProfile(ctx context.Context, userID int64, username, firstName, lastName, email, phone string) error
}

// TokenIssuer defines an interface for generating signed tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID int64, username, role string) (string, time.Time, error)
}

// ResetMailSender delivers the password reset link.
type ResetMailSender interface {
	SendPasswordReset(ctx context.Context, toEmail, token string) error
}

// LoginLimiter tracks failed login attempts per username.
type LoginLimiter interface {
	IsLocked(ctx context.Context, username string) (bool, error)
	Increment(ctx context.Context, username string) (int64, error)
	Reset(ctx context.Context, username string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AuthService coordinates registration, login and the password lifecycle.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	jwt         TokenIssuer
	mailer      ResetMailSender
	limiter     LoginLimiter
	kafkaWriter KafkaWriter
	resetTTL    time.Duration
}

// NewAuthService creates a new AuthService instance. mailer, limiter and
// kafkaWriter may be nil: forgot-password then fails with ErrMailDelivery,
// lockout is skipped, events are not published.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	jwt TokenIssuer,
	mailer ResetMailSender,
	limiter LoginLimiter,
	kafkaWriter KafkaWriter,
	resetTTL time.Duration,
) *AuthService {
	if resetTTL <= 0 {
		resetTTL = 24 * time.Hour
	}
	return &AuthService{
		reader:      reader,
		writer:      writer,
		jwt:         jwt,
		mailer:      mailer,
		limiter:     limiter,
		kafkaWriter: kafkaWriter,
		resetTTL:    resetTTL,
	}
}

// Register validates the request and creates a new user with its profile.
// The password is stored as a bcrypt hash; no token is issued.
func (svc *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := validation.Struct(req); err != nil {
		logger.Log.Errorw("registration validation failed", "err", err)
		return err
	}

	exists, err := svc.reader.Exists(ctx, req.Username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if exists {
		logger.Log.Errorw("user already exists", "username", req.Username)
		return ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	profile := models.ProfileDB{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      models.RoleUser,
	}

	userID, err := svc.writer.Save(ctx, req.Username, string(hashedPassword), profile)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	svc.publishEvent(ctx, models.EventUserRegistered, userID, req.Username)
	return nil
}

// Login authenticates a user and returns a signed token with its expiry and
// the user's role. Unknown usernames and wrong passwords produce the same
// error.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	if svc.limiter != nil {
		locked, err := svc.limiter.IsLocked(ctx, username)
		if err != nil {
			logger.Log.Errorw("failed to check login attempts", "err", err)
		} else if locked {
			logger.Log.Errorw("account locked", "username", username)
			return nil, ErrAccountLocked
		}
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, svc.failedLogin(ctx, username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, svc.failedLogin(ctx, username)
	}

	role := models.RoleUser
	profile, err := svc.reader.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to get profile", "err", err)
		return nil, err
	}
	if profile != nil {
		role = profile.Role
	}

	token, expiry, err := svc.jwt.Generate(ctx, user.ID, user.Username, role)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return nil, err
	}

	if svc.limiter != nil {
		if err := svc.limiter.Reset(ctx, username); err != nil {
			logger.Log.Errorw("failed to reset login attempts", "err", err)
		}
	}

	return &models.LoginResult{Token: token, Expiry: expiry, Role: role}, nil
}

func (svc *AuthService) failedLogin(ctx context.Context, username string) error {
	logger.Log.Errorw("invalid credentials", "username", username)
	if svc.limiter != nil {
		if _, err := svc.limiter.Increment(ctx, username); err != nil {
			logger.Log.Errorw("failed to record login attempt", "err", err)
		}
	}
	return ErrInvalidCredentials
}

// ChangePassword rotates the password of an authenticated user. The new
// password must differ from both the current and the previous one.
func (svc *AuthService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		logger.Log.Errorw("current password mismatch", "user_id", userID)
		return ErrInvalidCredentials
	}

	if err := svc.checkReuse(user, req.NewPassword); err != nil {
		return err
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, userID, string(newHash), user.PasswordHash); err != nil {
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}

	svc.publishEvent(ctx, models.EventUserPasswordChanged, userID, user.Username)
	return nil
}

// checkReuse rejects a new password matching the current or previous hash.
func (svc *AuthService) checkReuse(user *models.UserDB, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)) == nil {
		return ErrPasswordReuse
	}
	if user.PreviousPasswordHash != nil {
		if bcrypt.CompareHashAndPassword([]byte(*user.PreviousPasswordHash), []byte(newPassword)) == nil {
			return ErrPasswordReuse
		}
	}
	return nil
}

// ForgotPassword stores a fresh reset token on the account and emails the
// reset link. An unknown email still succeeds so callers cannot probe for
// registered accounts; a delivery failure clears the stored token again.
func (svc *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if err := validation.Struct(models.ForgotPasswordRequest{Email: email}); err != nil {
		return err
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user by email", "err", err)
		return err
	}
	if user == nil {
		logger.Log.Infow("forgot password for unknown email")
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "err", err)
		return err
	}

	expiresAt := time.Now().Add(svc.resetTTL)
	if err := svc.writer.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		logger.Log.Errorw("failed to store reset token", "err", err)
		return err
	}

	if svc.mailer == nil {
		err = errors.New("mail sender not configured")
	} else {
		err = svc.mailer.SendPasswordReset(ctx, email, token)
	}
	if err != nil {
		logger.Log.Errorw("reset mail delivery failed", "err", err)
		if clearErr := svc.writer.ClearResetToken(ctx, user.ID); clearErr != nil {
			logger.Log.Errorw("failed to clear reset token after delivery failure", "err", clearErr)
		}
		return ErrMailDelivery
	}

	return nil
}

// ValidateResetToken reports whether a reset token matches a user and has
// not expired. It never mutates state.
func (svc *AuthService) ValidateResetToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	user, err := svc.reader.GetByResetToken(ctx, token)
	if err != nil {
		logger.Log.Errorw("failed to get user by reset token", "err", err)
		return false, err
	}
	if user == nil || user.ResetTokenExpiresAt == nil {
		return false, nil
	}
	if time.Now().After(*user.ResetTokenExpiresAt) {
		return false, nil
	}

	return true, nil
}

// ResetPassword sets a new password for the holder of a valid reset token
// and clears the token. An expired token behaves exactly like an unknown
// one.
func (svc *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	user, err := svc.reader.GetByResetToken(ctx, req.Token)
	if err != nil {
		logger.Log.Errorw("failed to get user by reset token", "err", err)
		return err
	}
	if user == nil || user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return ErrInvalidResetToken
	}

	if err := svc.checkReuse(user, req.NewPassword); err != nil {
		return err
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, user.ID, string(newHash), user.PasswordHash); err != nil {
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}
	if err := svc.writer.ClearResetToken(ctx, user.ID); err != nil {
		logger.Log.Errorw("failed to clear reset token", "err", err)
		return err
	}

	svc.publishEvent(ctx, models.EventUserPasswordReset, user.ID, user.Username)
	return nil
}

// GetProfile returns the profile of the given user.
func (svc *AuthService) GetProfile(ctx context.Context, userID int64) (*models.UserProfileResponse, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile, err := svc.reader.GetProfileByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get profile", "err", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	return &models.UserProfileResponse{
		ID:        user.ID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Username:  user.Username,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Role:      profile.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}

// UpdateProfile updates the user's display and contact attributes.
func (svc *AuthService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if req.Username != user.Username {
		exists, err := svc.reader.Exists(ctx, req.Username)
		if err != nil {
			logger.Log.Errorw("failed to check user exists", "err", err)
			return err
		}
		if exists {
			return ErrUserAlreadyExists
		}
	}

	if err := svc.writer.UpdateProfile(ctx, userID, req.Username, req.FirstName, req.LastName, req.Email, req.Phone); err != nil {
		logger.Log.Errorw("failed to update profile", "err", err)
		return err
	}

	return nil
}

// generateResetToken produces 32 bytes from a cryptographically secure
// source, URL-safe encoded without padding.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// publishEvent publishes a domain event to Kafka, best effort.
func (svc *AuthService) publishEvent(ctx context.Context, eventType string, userID int64, username string) {
	publishEvent(ctx, svc.kafkaWriter, models.Event{
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		Username:   username,
		OccurredAt: time.Now().UTC(),
	})
}

// publishEvent serializes the event and writes it keyed by user id. A nil
// writer skips publishing; failures are logged, never propagated.
func publishEvent(ctx context.Context, w KafkaWriter, event models.Event) {
	if w == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal event", "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: data,
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish event", "event_id", event.EventID, "err", err)
		return
	}

	logger.Log.Infow("event published", "event_id", event.EventID, "type", event.Type)
}
