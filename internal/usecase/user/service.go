// Package user implements registration, login, and session issuance.
package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/campushare/notehub/internal/domain"
)

// Service handles account operations.
type Service struct {
	repo     Repository
	sessions SessionStore
}

// New creates a user service.
func New(repo Repository, sessions SessionStore) *Service {
	return &Service{repo: repo, sessions: sessions}
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	if username == "" || email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username, email, and password are required", domain.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, username, email, string(hashed))
	if err != nil {
		return domain.User{}, fmt.Errorf("register: %w", err)
	}
	return u, nil
}

// Login verifies credentials and issues a session token. Missing users
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("create session: %w", err)
	}

	u.Password = ""
	return u, token, nil
}

// Logout revokes a session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Get returns the account for an authenticated user id.
func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
