// Package service contains the business logic layer: validation, rules,
// and orchestration, expressed in domain terms with domain errors.
//
// The layering is:
//
//	handler (HTTP)  → service (rules) → repository (storage)
//
// Services accept primitives and models — never *http.Request — and
// return apperror values, never status codes. That keeps every rule
// callable and testable without a web server.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/book-catalog/internal/apperror"
	"github.com/sakif/book-catalog/internal/auth"
	"github.com/sakif/book-catalog/internal/model"
	"github.com/sakif/book-catalog/internal/repository"
)

// AuthService handles login and credential management.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Login verifies a username/password pair against the credential store
// and issues a bearer token for the account.
//
// Unknown username and wrong password both return the same Unauthorized
// error with the same message — distinguishing them would tell an
// attacker which usernames exist. Storage failures are kept distinct so
// they surface as 500, not 401.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperror.Unauthorized("incorrect username or password")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.Unauthorized("incorrect username or password")
		}
		return "", fmt.Errorf("service/auth: looking up user %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.Unauthorized("incorrect username or password")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}

// EnsureUser creates a credential-store account if one with that username
// does not already exist. Called at startup to seed the demo account, so
// the token endpoint works on a fresh database. Idempotent: an existing
// account is left untouched (including its password).
func (s *AuthService) EnsureUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("service/auth: seed username and password must not be empty")
	}

	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("service/auth: checking for user %q: %w", username, err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("service/auth: hashing seed password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("service/auth: creating user %q: %w", username, err)
	}

	s.logger.Info("credential store seeded",
		slog.String("userID", user.ID),
		slog.String("username", username),
	)

	return nil
}
