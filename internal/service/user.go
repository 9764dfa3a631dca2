package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"moviweb/internal/apperror"
	"moviweb/internal/model"
	"moviweb/internal/repository"
)

// UserService handles business logic for user operations
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new user account. The password is bcrypt-hashed before
// it is stored and never appears in logs.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.Validation("username is required")
	}
	if password == "" {
		return nil, apperror.Validation("password is required")
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Persistence("failed to check username", err)
	}
	if exists {
		return nil, apperror.Validation("username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       username,
		PasswordHashed: string(hashedPassword),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The pre-check raced a concurrent insert; the unique constraint is
		// the authoritative answer.
		if errors.Is(err, model.ErrUsernameExists) {
			return nil, apperror.Validation("username already taken")
		}
		return nil, apperror.Persistence("failed to create user", err)
	}

	log.Printf("[UserService] Registered user id=%d username=%s", user.ID, user.Username)
	return user, nil
}

// Login authenticates a user with username and password. The error is the
// same whether the username is unknown or the password is wrong.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		// Only an unknown username maps to the constant-shape auth error; a
		// storage failure is an outage, not a credential problem.
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, apperror.Auth("invalid username or password")
		}
		return nil, apperror.Persistence("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(password)); err != nil {
		return nil, apperror.Auth("invalid username or password")
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Persistence("failed to get user", err)
	}
	return user, nil
}

// List returns all users ordered by username ascending.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Persistence("failed to list users", err)
	}
	return users, nil
}
