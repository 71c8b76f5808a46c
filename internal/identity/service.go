package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chainsearch/chainsearch/internal/apperr"
)

const (
	minPasswordLength = 8
	maxUsernameLength = 150
)

var errUserNotFound = apperr.New(apperr.ErrNotFound, "user not found")

// Service manages the account lifecycle.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a user and stores a bcrypt hash of the password.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" {
		return User{}, apperr.New(apperr.ErrInvalidArgument, "username: this field may not be blank")
	}
	if len(username) > maxUsernameLength {
		return User{}, apperr.New(apperr.ErrInvalidArgument, "username: ensure this field has no more than %d characters", maxUsernameLength)
	}
	if len(creds.Password) < minPasswordLength {
		return User{}, apperr.New(apperr.ErrInvalidArgument, "password: must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies credentials and records the login time.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return User{}, invalidCredentials()
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, invalidCredentials()
	}

	now := time.Now().UTC()
	if err := s.repo.TouchLogin(ctx, user.ID, now); err != nil {
		return User{}, err
	}
	user.LastLogin = &now

	return user, nil
}

// Get returns a user by identifier.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func invalidCredentials() error {
	return apperr.New(apperr.ErrUnauthorized, "Unable to log in with provided credentials.")
}
