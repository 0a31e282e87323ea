package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/taexpense/auth-service/pkg/jwt"
	"github.com/taexpense/auth-service/pkg/logger"
	"github.com/taexpense/auth-service/pkg/sanitizer"
	"github.com/taexpense/auth-service/pkg/token"
)

// ExternalIdentity is the verified claim set extracted from a provider's
// identity assertion. Implementations must establish authenticity (signature
// against the provider's published keys, or a direct TLS call to the
// provider's user endpoint) before populating it.
type ExternalIdentity struct {
	Subject       string
	Email         string
	DisplayName   string
	EmailVerified bool
}

// OAuthProvider drives the authorization-code flow for one external identity
// provider.
type OAuthProvider interface {
	// Name is the provider identifier stored on user records.
	Name() string
	// AuthCodeURL builds the provider's authorization URL carrying the
	// anti-forgery state parameter.
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for a verified identity.
	// Failures classify as ErrExchangeFailed or ErrIdentityIncomplete.
	Exchange(ctx context.Context, code string) (*ExternalIdentity, error)
}

// stateClaims is the payload of the signed, self-verifying state parameter.
// No server-side storage is involved: the signature proves the value
// originated from our Start endpoint, the expiry bounds the window.
type stateClaims struct {
	Nonce     string `json:"nonce"`
	Provider  string `json:"provider"`
	ExpiresAt int64  `json:"exp"`
}

// OAuthService resolves external identities to local user records and issues
// bearer tokens for them.
type OAuthService struct {
	store       UserStore
	tokens      *jwt.Service
	stateSecret string
	stateTTL    time.Duration
	providers   map[string]OAuthProvider
	logger      *slog.Logger
}

// OAuthOption configures an OAuthService.
type OAuthOption func(*OAuthService)

// WithStateTTL overrides the validity window of the state parameter.
func WithStateTTL(ttl time.Duration) OAuthOption {
	return func(s *OAuthService) {
		s.stateTTL = ttl
	}
}

// WithOAuthLogger sets a custom logger for the service.
func WithOAuthLogger(log *slog.Logger) OAuthOption {
	return func(s *OAuthService) {
		s.logger = log
	}
}

// NewOAuthService creates a federation service over the given providers.
// Nil providers are skipped, which is how unconfigured providers are
// disabled at wiring time.
func NewOAuthService(store UserStore, tokens *jwt.Service, stateSecret string, providers []OAuthProvider, opts ...OAuthOption) *OAuthService {
	s := &OAuthService{
		store:       store,
		tokens:      tokens,
		stateSecret: stateSecret,
		stateTTL:    10 * time.Minute,
		providers:   make(map[string]OAuthProvider, len(providers)),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, p := range providers {
		if p != nil {
			s.providers[p.Name()] = p
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the authorization URL for the named provider, embedding a
// freshly signed state parameter. Returns ErrFederationNotConfigured when
// the provider is absent.
func (s *OAuthService) Start(ctx context.Context, providerName string) (string, error) {
	p, ok := s.providers[providerName]
	if !ok {
		return "", ErrFederationNotConfigured
	}

	state, err := token.Generate(stateClaims{
		Nonce:     uuid.NewString(),
		Provider:  providerName,
		ExpiresAt: time.Now().Add(s.stateTTL).Unix(),
	}, s.stateSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}

	return p.AuthCodeURL(state), nil
}

// Callback completes the flow: the state parameter is verified, the code is
// exchanged for a verified identity, and the identity is resolved to a local
// user record. Accounts are merged by email: an existing record keeps its id
// and no duplicate is created; a never-seen email gets a new federated
// record with no password hash.
func (s *OAuthService) Callback(ctx context.Context, providerName, code, state string) (string, error) {
	p, ok := s.providers[providerName]
	if !ok {
		return "", ErrFederationNotConfigured
	}

	if err := s.checkState(providerName, state); err != nil {
		return "", err
	}

	ident, err := p.Exchange(ctx, code)
	if err != nil {
		return "", err
	}

	if ident.Email == "" {
		return "", ErrIdentityIncomplete
	}
	// Only provider-verified emails may resolve to an account: merging by a
	// spoofable email would allow takeover of an existing local account.
	if !ident.EmailVerified {
		return "", ErrUnverifiedEmail
	}

	email := sanitizer.NormalizeEmail(ident.Email)

	id, err := s.resolve(ctx, p.Name(), email, ident)
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "oauth login resolved",
		logger.UserID(id),
		logger.Provider(p.Name()),
		slog.String("email", sanitizer.MaskEmail(email)),
		logger.Component("oauth"),
	)

	return s.tokens.Issue(strconv.FormatInt(id, 10), email)
}

func (s *OAuthService) checkState(providerName, state string) error {
	if state == "" {
		return ErrInvalidState
	}
	claims, err := token.Parse[stateClaims](state, s.stateSecret)
	if err != nil {
		return ErrInvalidState
	}
	if claims.Provider != providerName {
		return ErrInvalidState
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return ErrInvalidState
	}
	return nil
}

func (s *OAuthService) resolve(ctx context.Context, providerName, email string, ident *ExternalIdentity) (int64, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return 0, err
	}

	u := NewUser{
		Email:      email,
		Provider:   providerName,
		ProviderID: &ident.Subject,
	}
	if ident.DisplayName != "" {
		u.DisplayName = &ident.DisplayName
	}

	id, err := s.store.Insert(ctx, u)
	if err != nil {
		// A concurrent callback may have created the record; merge with it.
		if errors.Is(err, ErrEmailAlreadyExists) {
			if existing, findErr := s.store.FindByEmail(ctx, email); findErr == nil {
				return existing.ID, nil
			}
		}
		return 0, err
	}
	return id, nil
}
