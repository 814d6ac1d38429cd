// Package users implements registration and login against a credential store.
package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/safeguard/internal/auth"
	"github.com/hongminglow/safeguard/internal/logging"
	"github.com/hongminglow/safeguard/internal/models"
	"github.com/hongminglow/safeguard/internal/storage"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

// LoginResult is what a successful Login hands back to the caller.
type LoginResult struct {
	User  models.User
	Token string
}

// Service performs registration and login. It holds no per-request state.
type Service struct {
	store     storage.UserStore
	tokens    *auth.TokenManager
	log       logging.Logger
	dummyHash string
}

// NewService wires a Service to its store and token manager.
func NewService(store storage.UserStore, tokens *auth.TokenManager, log logging.Logger) *Service {
	return &Service{
		store:     store,
		tokens:    tokens,
		log:       log,
		dummyHash: newDummyHash(),
	}
}

// NormalizeEmail is the single email policy used for both insert and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates input, hashes the password and persists the user.
// No token is issued here.
func (s *Service) Register(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if err := validateRegistration(name, email, password); err != nil {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.store.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.log.Info(ctx, "user registered", "user_id", created.ID)
	return created, nil
}

// Login checks the credentials and issues a bearer token bound to the user id.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Burn the same bcrypt time as a real check.
			_ = auth.ComparePassword(s.dummyHash, password)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.log.Warn(ctx, "stored password hash unreadable", "user_id", user.ID, "error", err)
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("generate token: %w", err)
	}

	s.log.Debug(ctx, "user logged in", "user_id", user.ID)
	return LoginResult{User: user, Token: token}, nil
}

// Profile returns the user identified by id, typically a token subject.
func (s *Service) Profile(ctx context.Context, id string) (models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrUnknownUser
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return user, nil
}

func validateRegistration(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return &ValidationError{Message: "Name, email and password are required"}
	}
	if len(password) < MinPasswordLength {
		return &ValidationError{Message: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)}
	}
	if len(password) > auth.MaxPasswordBytes {
		return &ValidationError{Message: fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes)}
	}
	return nil
}

func newDummyHash() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	hash, err := auth.HashPassword(hex.EncodeToString(buf))
	if err != nil {
		return ""
	}
	return hash
}
