package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"nicbank/internal/auth"
	apperrors "nicbank/internal/errors"
	"nicbank/internal/model"
	"nicbank/internal/repository"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ListParams carries pagination and filter input for a user listing.
// Zero values mean "default page", "default limit" and "no filter".
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Role   string // wire-format role, or "all"
	Status string // active | inactive | all
}

// UserPage is one page of users plus pagination metadata.
type UserPage struct {
	Users      []model.User `json:"users"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
	HasMore    bool         `json:"hasMore"`
}

// CreateUserInput is the admin-create payload.
type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       string // wire format; defaults to "user"
	Department string // defaults to "Operations"
	Status     string // active | inactive; defaults to "active"
}

// UpdateUserInput carries optional field updates; empty strings are skipped.
type UpdateUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	Department string
	Status     string
}

// UserService exposes role-gated user management operations. Role checks that
// gate whole endpoints live in middleware; rules that depend on the target
// record (self-or-admin, self-delete) live here.
type UserService interface {
	List(ctx context.Context, params ListParams) (*UserPage, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, input CreateUserInput) (*model.User, error)
	Update(ctx context.Context, actor *model.User, id uint, input UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
	Stats(ctx context.Context) (*repository.UserStats, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService over the repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, params ListParams) (*UserPage, error) {
	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = defaultPageLimit
	}
	if params.Page < 1 {
		return nil, apperrors.Invalid("Page must be at least 1")
	}
	if params.Limit < 1 || params.Limit > maxPageLimit {
		return nil, apperrors.Invalid("Limit must be between 1 and 100")
	}

	filter := repository.ListFilter{
		Search: strings.TrimSpace(params.Search),
		Offset: (params.Page - 1) * params.Limit,
		Limit:  params.Limit,
	}

	if params.Role != "" && !strings.EqualFold(params.Role, "all") {
		role, err := model.ParseRole(params.Role)
		if err != nil {
			return nil, apperrors.Invalid(fmt.Sprintf("Invalid role: %s", params.Role))
		}
		filter.Role = &role
	}

	if params.Status != "" && !strings.EqualFold(params.Status, "all") {
		switch strings.ToLower(params.Status) {
		case "active":
			active := true
			filter.Active = &active
		case "inactive":
			active := false
			filter.Active = &active
		default:
			return nil, apperrors.Invalid(fmt.Sprintf("Invalid status: %s", params.Status))
		}
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	totalPages := 1
	if total > 0 {
		totalPages = int((total + int64(params.Limit) - 1) / int64(params.Limit))
	}
	if total > 0 && params.Page > totalPages {
		return nil, apperrors.ErrPageOutOfRange
	}

	return &UserPage{
		Users:      users,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
		HasMore:    params.Page < totalPages,
	}, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.Invalid("Name cannot be empty")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.Invalid("Password must be at least 6 characters")
	}

	role := model.RoleUser
	if input.Role != "" {
		parsed, err := model.ParseRole(input.Role)
		if err != nil {
			return nil, apperrors.Invalid(fmt.Sprintf("Invalid role: %s", input.Role))
		}
		role = parsed
	}

	department := strings.TrimSpace(input.Department)
	if department == "" {
		department = "Operations"
	}

	isActive := true
	if input.Status != "" {
		isActive = strings.EqualFold(input.Status, "active")
	}

	email := NormalizeEmail(input.Email)
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email existence: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Department:   department,
		IsActive:     isActive,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, actor *model.User, id uint, input UpdateUserInput) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	isSelf := actor.ID == id
	isAdmin := actor.Role == model.RoleAdmin

	if !isSelf && !isAdmin {
		return nil, apperrors.ErrForbidden
	}
	// Only admins may touch role, department or active status.
	if !isAdmin && (input.Role != "" || input.Department != "" || input.Status != "") {
		return nil, apperrors.ErrForbidden
	}

	if input.Name != "" {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, apperrors.Invalid("Name cannot be empty")
		}
		user.Name = name
	}

	if input.Email != "" {
		email := NormalizeEmail(input.Email)
		if email != user.Email {
			existing, err := s.repo.FindByEmail(ctx, email)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("check email existence: %w", err)
			}
			if existing != nil && existing.ID != id {
				return nil, apperrors.ErrEmailTaken
			}
			user.Email = email
		}
	}

	if input.Password != "" {
		if len(input.Password) < minPasswordLength {
			return nil, apperrors.Invalid("Password must be at least 6 characters")
		}
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if isAdmin {
		if input.Role != "" {
			role, err := model.ParseRole(input.Role)
			if err != nil {
				return nil, apperrors.Invalid(fmt.Sprintf("Invalid role: %s", input.Role))
			}
			user.Role = role
		}
		if input.Department != "" {
			user.Department = strings.TrimSpace(input.Department)
		}
		if input.Status != "" {
			switch strings.ToLower(input.Status) {
			case "active":
				user.IsActive = true
			case "inactive":
				user.IsActive = false
			default:
				return nil, apperrors.Invalid(fmt.Sprintf("Invalid status: %s", input.Status))
			}
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes a user. A user may never delete their own account,
// regardless of role.
func (s *userService) Delete(ctx context.Context, actor *model.User, id uint) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.ID == actor.ID {
		return apperrors.ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *userService) Stats(ctx context.Context) (*repository.UserStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return stats, nil
}
