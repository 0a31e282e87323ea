package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"github.com/taexpense/auth-service/pkg/jwt"
	"github.com/taexpense/auth-service/pkg/logger"
	"github.com/taexpense/auth-service/pkg/mailer"
	"github.com/taexpense/auth-service/pkg/sanitizer"
)

const otpDigits = 6

// OTPService drives password reset via one-time numeric codes delivered
// out-of-band. A successful verification doubles as an authentication event
// and issues a fresh bearer token.
type OTPService struct {
	store   UserStore
	hasher  *PasswordHasher
	tokens  *jwt.Service
	sender  mailer.EmailSender
	codeTTL time.Duration
	logger  *slog.Logger
}

// OTPOption configures an OTPService.
type OTPOption func(*OTPService)

// WithOTPCodeTTL overrides the code validity window.
func WithOTPCodeTTL(ttl time.Duration) OTPOption {
	return func(s *OTPService) {
		s.codeTTL = ttl
	}
}

// WithOTPLogger sets a custom logger for the service.
func WithOTPLogger(log *slog.Logger) OTPOption {
	return func(s *OTPService) {
		s.logger = log
	}
}

// NewOTPService creates an OTP manager. Codes are valid for 10 minutes
// unless overridden.
func NewOTPService(store UserStore, hasher *PasswordHasher, tokens *jwt.Service, sender mailer.EmailSender, opts ...OTPOption) *OTPService {
	s := &OTPService{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		sender:  sender,
		codeTTL: 10 * time.Minute,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request generates a fresh reset code for the user, persists it with its
// expiry, and hands the message to the notifier. Returns ErrUserNotFound for
// unknown emails.
func (s *OTPService) Request(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	expiresAt := time.Now().Add(s.codeTTL)
	if err := s.store.SetOTP(ctx, email, code, expiresAt); err != nil {
		return err
	}

	if err := s.sender.SendEmail(ctx, mailer.SendEmailParams{
		SendTo:  email,
		Subject: "Your OTP Code",
		BodyHTML: fmt.Sprintf("<p>Your OTP is <strong>%s</strong>. It expires in %d minutes.</p>",
			code, int(s.codeTTL.Minutes())),
		Tag: "otp",
	}); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}

	s.logger.InfoContext(ctx, "otp issued",
		logger.UserID(user.ID),
		slog.String("email", sanitizer.MaskEmail(email)),
		slog.Time("expires_at", expiresAt),
		logger.Component("otp"),
	)

	return nil
}

// Verify consumes a pending code. On success the optional new password is
// hashed and persisted, and a fresh bearer token is issued. Invalid, expired
// and already-used codes all fail with ErrInvalidOrExpiredOTP; which half of
// the check failed is deliberately not revealed.
func (s *OTPService) Verify(ctx context.Context, email, code, newPassword string) (string, error) {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	ok, err := s.store.ConsumeOTP(ctx, email, code)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidOrExpiredOTP
	}

	if newPassword != "" {
		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.store.UpdatePassword(ctx, email, hash); err != nil {
			return "", err
		}
	}

	s.logger.InfoContext(ctx, "otp verified",
		logger.UserID(user.ID),
		slog.Bool("password_rotated", newPassword != ""),
		logger.Component("otp"),
	)

	return s.tokens.Issue(strconv.FormatInt(user.ID, 10), user.Email)
}

// generateCode returns a uniformly random zero-padded numeric code.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for range otpDigits {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}
