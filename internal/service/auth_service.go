package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"nicbank/internal/auth"
	apperrors "nicbank/internal/errors"
	"nicbank/internal/model"
	"nicbank/internal/repository"
)

const minPasswordLength = 6

// AuthService handles registration, login and password management.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error
	UpdateProfile(ctx context.Context, user *model.User, name string) (*model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokens    *auth.TokenService
	dummyHash string
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService) AuthService {
	// Hashed once so a login against an unknown email still pays the full
	// argon2 verification cost, keeping its timing level with a wrong-password
	// attempt.
	dummyHash, err := auth.HashPassword("decoy-credential")
	if err != nil {
		dummyHash = ""
	}
	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		dummyHash: dummyHash,
	}
}

// NormalizeEmail lower-cases and trims an email address. Uniqueness is
// case-insensitive, so every write and lookup goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new active USER-role account with a hashed password.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Invalid("Name cannot be empty")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.Invalid("Password must be at least 6 characters")
	}
	email = NormalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email existence: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Department:   "Operations",
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a session token. An unknown email and
// a wrong password return the same error; a deactivated account is the only
// distinguishable failure.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.VerifyPassword(password, s.dummyHash)
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", apperrors.ErrAccountDeactivated
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("update last login: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// ChangePassword replaces the caller's password after verifying the old one.
func (s *authService) ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error {
	if !auth.VerifyPassword(oldPassword, user.PasswordHash) {
		return apperrors.ErrInvalidOldPassword
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.Invalid("Password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdateProfile renames the caller's own account.
func (s *authService) UpdateProfile(ctx context.Context, user *model.User, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Invalid("Name cannot be empty")
	}
	user.Name = name
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}
