package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUsernameRequired     = errors.New("username is required")
	ErrInvalidRole          = errors.New("role must be admin or member")
	ErrPasswordTooLong      = errors.New("password too long")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrAdminRequired        = errors.New("admin role required")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Authenticate looks up the user by exact username and checks the password.
// Any mismatch yields ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !passwordMatches(user.Password, input.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and returns the session for the user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (Session, error) {
	user, err := s.Authenticate(ctx, input)
	if err != nil {
		return Session{}, err
	}

	return Session{Username: user.Username, Role: user.Role}, nil
}
