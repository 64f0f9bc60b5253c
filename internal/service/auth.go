package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/taskflow/internal/auth"
	"github.com/msomdec/taskflow/internal/domain"
)

// emailRegex accepts local-part "@" domain-with-at-least-one-dot with an
// ASCII-letter TLD of length >= 2.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthService handles user registration, login, and token-to-user resolution.
type AuthService struct {
	users  domain.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenCodec
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenCodec) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// normalizeEmail applies the canonical form used for every uniqueness check
// and lookup: trimmed and lowercased.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account after validating inputs.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	email = normalizeEmail(email)
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	if utf8.RuneCountInString(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}

	// A concurrent registration can slip past the existence check above; the
	// repository maps the store's unique-constraint violation to
	// ErrDuplicateEmail, so both orderings surface the same error.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed bearer token. Unknown email
// and wrong password both fail with ErrInvalidCredentials so the response
// never reveals which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// Resolve decodes a bearer token and loads the user it identifies.
// Token codec errors (expired, malformed) propagate unchanged; a valid token
// for a since-deleted account fails with ErrUserNotFound.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}

	claims, err := s.tokens.Decode(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}
