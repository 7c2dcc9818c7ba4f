package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/secondchance/apiserver/internal/auth"
	"github.com/secondchance/apiserver/internal/store"
	"github.com/secondchance/apiserver/types"
)

// ErrInvalidCredentials covers both "email not found" and "wrong password".
// The two cases are intentionally indistinguishable to block user
// enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService orchestrates registration, login and identity lookup.
type UserService struct {
	repo   UserRepository
	tokens *auth.TokenService
}

func NewUserService(repo UserRepository, tokens *auth.TokenService) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register creates a new account and returns an auth token for it.
// Ordering matters: uniqueness check, hash, persist, issue. The unique
// email index catches inserts that race past the check.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName string) (string, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return "", store.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("check existing email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, types.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
	})
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(user.ID.Hex())
}

// Login verifies credentials and returns an auth token plus the user
// record. Unknown email and wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (string, types.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", types.User{}, ErrInvalidCredentials
		}
		return "", types.User{}, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", types.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", types.User{}, err
	}
	return token, user, nil
}

// GetByID resolves a token-carried identity back to a user record. The
// record may be gone if the user was removed after the token was issued.
func (s *UserService) GetByID(ctx context.Context, id string) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}
