package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	appconfig "supplier-management-api-server/config"
	"supplier-management-api-server/internal/auth"
	"supplier-management-api-server/internal/models"
	"supplier-management-api-server/internal/repositories"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")
)

// resetTokenTTL bounds how long an emailed reset link stays usable.
const resetTokenTTL = time.Hour

// AccountStore is the persistence surface for user accounts.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
	UpdateLastSignIn(ctx context.Context, id primitive.ObjectID) error
}

// ResetTokenStore persists single-use password reset tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token *models.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	Delete(ctx context.Context, token string) error
}

// ResetMailer delivers the password reset link.
type ResetMailer interface {
	SendPasswordReset(to, token string) error
}

type AccountService struct {
	users  AccountStore
	tokens ResetTokenStore
	mailer ResetMailer
	jwtCfg appconfig.JWTConfig
}

func NewAccountService(users AccountStore, tokens ResetTokenStore, mailer ResetMailer, jwtCfg appconfig.JWTConfig) *AccountService {
	return &AccountService{users: users, tokens: tokens, mailer: mailer, jwtCfg: jwtCfg}
}

// Register creates an account with a hashed password. Role defaults to
// VIEWER unless the caller sets one.
func (s *AccountService) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	taken, err := s.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash
	if user.Role == "" {
		user.Role = models.RoleViewer
	}
	user.CreatedAt = time.Now()

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return saved, nil
}

// Login checks the credentials and issues a signed JWT. The error for a
// missing account and a wrong password is identical on purpose.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to load account: %w", err)
	}
	if !auth.CheckPasswordHash(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(
		[]byte(s.jwtCfg.Secret),
		s.jwtCfg.Expiration,
		user.ID.Hex(),
		user.Email,
		string(user.Role),
		string(user.BusinessType),
		user.OrganizationName,
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.users.UpdateLastSignIn(ctx, user.ID); err != nil {
		zap.L().Warn("failed to record sign-in time", zap.String("email", email), zap.Error(err))
	}
	return token, user, nil
}

// RequestPasswordReset issues and emails a single-use reset token. An
// unknown email is reported as success so the endpoint cannot be used to
// probe for accounts.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			zap.L().Info("password reset requested for unknown email", zap.String("email", email))
			return nil
		}
		return fmt.Errorf("failed to load account: %w", err)
	}

	token := &models.PasswordResetToken{
		Email:     email,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if err := s.mailer.SendPasswordReset(email, token.Token); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	stored, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to load reset token: %w", err)
	}
	if time.Now().After(stored.ExpiresAt) {
		if err := s.tokens.Delete(ctx, token); err != nil {
			zap.L().Warn("failed to delete expired reset token", zap.Error(err))
		}
		return ErrResetTokenInvalid
	}

	user, err := s.users.FindByEmail(ctx, stored.Email)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash
	if _, err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.tokens.Delete(ctx, token); err != nil {
		zap.L().Warn("failed to delete used reset token", zap.Error(err))
	}
	return nil
}
