package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

var (
	// ErrInvalidUser indicates a malformed user payload.
	ErrInvalidUser = errors.New("invalid user")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when the username is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserInput is the write shape for users; Password is plaintext and is
// hashed before it ever reaches a repository.
type UserInput struct {
	Username string
	Email    string
	Password string
}

// UserPatchInput mirrors UserInput with every field optional.
type UserPatchInput struct {
	Username *string
	Email    *string
	Password *string
}

// UserService manages accounts. Responses only ever carry public fields.
type UserService interface {
	Create(ctx context.Context, input UserInput) (*domain.PublicUser, error)
	Get(ctx context.Context, id int64) (*domain.PublicUser, error)
	List(ctx context.Context) ([]domain.PublicUser, error)
	Replace(ctx context.Context, id int64, input UserInput) (*domain.PublicUser, error)
	Patch(ctx context.Context, id int64, input UserPatchInput) (*domain.PublicUser, error)
	// Authenticate verifies credentials and returns the account.
	Authenticate(ctx context.Context, username, password string) (*domain.PublicUser, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func validateUserInput(input UserInput) error {
	if len(strings.TrimSpace(input.Username)) < 3 {
		return ErrInvalidUser
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return ErrInvalidUser
	}
	if len(input.Password) < 6 {
		return ErrInvalidUser
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *userService) Create(ctx context.Context, input UserInput) (*domain.PublicUser, error) {
	if err := validateUserInput(input); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        input.Email,
		PasswordHash: hash,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.PublicUser, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

func (s *userService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]domain.PublicUser, len(users))
	for i := range users {
		public[i] = users[i].Public()
	}
	return public, nil
}

func (s *userService) Replace(ctx context.Context, id int64, input UserInput) (*domain.PublicUser, error) {
	if err := validateUserInput(input); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           id,
		Username:     strings.TrimSpace(input.Username),
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

func (s *userService) Patch(ctx context.Context, id int64, input UserPatchInput) (*domain.PublicUser, error) {
	patch := repository.UserPatch{}

	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		if len(trimmed) < 3 {
			return nil, ErrInvalidUser
		}
		patch.Username = &trimmed
	}
	if input.Email != nil {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			return nil, ErrInvalidUser
		}
		patch.Email = input.Email
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			return nil, ErrInvalidUser
		}
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	user, err := s.users.Patch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.PublicUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	public := user.Public()
	return &public, nil
}
