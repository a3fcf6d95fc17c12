package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"gorm.io/gorm"
)

// UserService manages credential records.
type UserService struct {
	userRepo repository.UserRepository
	hashCost int
}

// NewUserService creates a new UserService hashing passwords at hashCost.
func NewUserService(userRepo repository.UserRepository, hashCost int) *UserService {
	return &UserService{
		userRepo: userRepo,
		hashCost: hashCost,
	}
}

// CreateUserInput represents the fields of a new account.
type CreateUserInput struct {
	Username string
	Password string
	Role     models.Role
}

// ListUsers returns every user ordered by username.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser adds an account. Admin only.
func (s *UserService) CreateUser(ctx context.Context, sess Session, input CreateUserInput) (*models.User, error) {
	if !sess.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if strings.TrimSpace(input.Username) == "" {
		return nil, ErrUsernameRequired
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := hashPassword(input.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Password: hashed,
		Role:     input.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ChangePassword overwrites a user's password without checking the old one.
// Admin only.
func (s *UserService) ChangePassword(ctx context.Context, sess Session, username, newPassword string) error {
	if !sess.IsAdmin() {
		return ErrAdminRequired
	}

	hashed, err := hashPassword(newPassword, s.hashCost)
	if err != nil {
		return err
	}

	rows, err := s.userRepo.UpdatePassword(ctx, username, hashed)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteUser removes an account. Tasks assigned to it are kept. Admin only.
func (s *UserService) DeleteUser(ctx context.Context, sess Session, username string) error {
	if !sess.IsAdmin() {
		return ErrAdminRequired
	}

	if err := s.userRepo.Delete(ctx, username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// EnsureDefaultAccounts inserts each account that does not exist yet and
// returns how many were created. Existing accounts are never modified.
func (s *UserService) EnsureDefaultAccounts(ctx context.Context, accounts []config.Account) (int, error) {
	created := 0
	for _, account := range accounts {
		role := models.Role(account.Role)
		if !role.Valid() {
			return created, fmt.Errorf("seed account %q: %w", account.Username, ErrInvalidRole)
		}

		if _, err := s.userRepo.FindByUsername(ctx, account.Username); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("failed to check seed account %q: %w", account.Username, err)
		}

		hashed, err := hashPassword(account.Password, s.hashCost)
		if err != nil {
			return created, err
		}

		inserted, err := s.userRepo.CreateIfAbsent(ctx, &models.User{
			Username: account.Username,
			Password: hashed,
			Role:     role,
		})
		if err != nil {
			return created, fmt.Errorf("failed to seed account %q: %w", account.Username, err)
		}
		if inserted {
			created++
		}
	}

	return created, nil
}
