package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// InsecureDefaultSecret is the placeholder signing secret used when
// AUTH_JWT_SECRET is not set. Acceptable for local development only; the
// caller is expected to log a warning when it is in effect.
const InsecureDefaultSecret = "change-me"

// Config holds bearer token settings loaded from the environment.
type Config struct {
	Secret         string `env:"AUTH_JWT_SECRET" envDefault:"change-me"`
	ExpiresMinutes int    `env:"AUTH_JWT_EXPIRES_MINUTES" envDefault:"60"`
}

// IsInsecureDefault reports whether the configured secret is the development
// placeholder rather than a real deployment secret.
func (c Config) IsInsecureDefault() bool {
	return c.Secret == InsecureDefaultSecret
}

// Identity is the subject a verified token binds.
type Identity struct {
	Subject string
	Email   string
}

// accessClaims is the wire shape of an issued token: registered claims plus
// the user's email.
type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Service issues and verifies self-contained HS256 bearer tokens.
// The signing key is held in memory only; tokens are stateless and expiry is
// the only invalidation mechanism.
type Service struct {
	signingKey []byte
	ttl        time.Duration
}

// New creates a token service with the provided signing key and token
// lifetime. The key must be non-empty.
func New(signingKey []byte, ttl time.Duration) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{signingKey: signingKey, ttl: ttl}, nil
}

// NewFromConfig creates a token service from environment configuration.
func NewFromConfig(cfg Config) (*Service, error) {
	return New([]byte(cfg.Secret), time.Duration(cfg.ExpiresMinutes)*time.Minute)
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue produces a signed bearer token binding the given subject and email,
// expiring at issuance time plus the configured lifetime.
func (s *Service) Issue(subject, email string) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the embedded
// identity. Consumers of the token format (other services) use this as their
// verification contract.
func (s *Service) Verify(tokenString string) (*Identity, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{Subject: claims.Subject, Email: claims.Email}, nil
}
