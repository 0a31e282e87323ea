package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/taexpense/auth-service/pkg/jwt"
	"github.com/taexpense/auth-service/pkg/logger"
	"github.com/taexpense/auth-service/pkg/sanitizer"
	"github.com/taexpense/auth-service/pkg/validator"
)

// PasswordService provides local email/password signup and login.
type PasswordService struct {
	store  UserStore
	hasher *PasswordHasher
	tokens *jwt.Service
	logger *slog.Logger
}

// PasswordOption configures a PasswordService.
type PasswordOption func(*PasswordService)

// WithPasswordLogger sets a custom logger for the service.
func WithPasswordLogger(log *slog.Logger) PasswordOption {
	return func(s *PasswordService) {
		s.logger = log
	}
}

// NewPasswordService creates a local-credentials authentication service.
func NewPasswordService(store UserStore, hasher *PasswordHasher, tokens *jwt.Service, opts ...PasswordOption) *PasswordService {
	s := &PasswordService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup creates a local user record and returns a bearer token for it.
// Returns ErrEmailAlreadyExists when the email is taken.
func (s *PasswordService) Signup(ctx context.Context, email, password, displayName string) (string, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.RequiredString("password", password),
	); err != nil {
		return "", err
	}

	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return "", ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	u := NewUser{
		Email:        email,
		PasswordHash: &hash,
		Provider:     ProviderLocal,
	}
	if displayName != "" {
		u.DisplayName = &displayName
	}

	// The unique index is authoritative: a concurrent signup between the
	// lookup above and this insert still surfaces as ErrEmailAlreadyExists.
	id, err := s.store.Insert(ctx, u)
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "user signed up",
		logger.UserID(id),
		slog.String("email", sanitizer.MaskEmail(email)),
		logger.Component("password"),
	)

	return s.tokens.Issue(strconv.FormatInt(id, 10), email)
}

// Login authenticates a local user and returns a bearer token.
// Any failure is reported as ErrInvalidCredentials to prevent enumeration:
// unknown email, federation-only account, and wrong password are
// indistinguishable to the caller.
func (s *PasswordService) Login(ctx context.Context, email, password string) (string, error) {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !user.HasPassword() {
		return "", ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, *user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(strconv.FormatInt(user.ID, 10), user.Email)
}
