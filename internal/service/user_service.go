package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"tasker-server/internal/auth"
	"tasker-server/internal/domain"
	"tasker-server/internal/repository"
)

// MinPasswordLength is the minimum accepted clear-text password length.
const MinPasswordLength = 8

var validate = validator.New()

// UserService describes account lifecycle operations. Authorization happens
// at the HTTP boundary; these operations only receive already-authorized
// usernames.
type UserService interface {
	Register(ctx context.Context, username, password, email, firstName, lastName string) error
	// Authenticate reports whether the password matches the stored hash.
	Authenticate(ctx context.Context, username, password string) (bool, error)
	// Update overwrites email, first and last name, and the password when a
	// new one is given. Username is immutable.
	Update(ctx context.Context, username, password, email, firstName, lastName string) (*domain.User, error)
	// Delete removes the user and cascades to every task they own.
	Delete(ctx context.Context, username string) error
	Get(ctx context.Context, username string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
}

func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
	}
}

func (s *userService) Register(ctx context.Context, username, password, email, firstName, lastName string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if username == "" || password == "" || email == "" || firstName == "" || lastName == "" {
		return fmt.Errorf("register: %w", ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("register: %w", ErrPasswordTooShort)
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("register: %w", ErrInvalidEmail)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return fmt.Errorf("register %q: %w", username, ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, fmt.Errorf("authenticate: %w", ErrInvalidInput)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, fmt.Errorf("authenticate %q: %w", username, ErrNotFound)
		}
		return false, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *userService) Update(ctx context.Context, username, password, email, firstName, lastName string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if username == "" || email == "" || firstName == "" || lastName == "" {
		return nil, fmt.Errorf("update: %w", ErrInvalidInput)
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, fmt.Errorf("update: %w", ErrInvalidEmail)
	}
	if password != "" && len(password) < MinPasswordLength {
		return nil, fmt.Errorf("update: %w", ErrPasswordTooShort)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("update %q: %w", username, ErrNotFound)
		}
		return nil, err
	}

	user.Email = email
	user.FirstName = firstName
	user.LastName = lastName
	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("update %q: %w", username, ErrNotFound)
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("delete: %w", ErrInvalidInput)
	}

	if err := s.users.Delete(ctx, username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("delete %q: %w", username, ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *userService) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("get %q: %w", username, ErrNotFound)
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

// sanitizeUser strips the password hash before the record leaves the service.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone
}
