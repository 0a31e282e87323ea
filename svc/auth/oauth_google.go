package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleConfig holds the Google OAuth application credentials.
type GoogleConfig struct {
	ClientID     string `env:"OAUTH_GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"OAUTH_GOOGLE_CLIENT_SECRET"`
	RedirectURI  string `env:"OAUTH_GOOGLE_REDIRECT_URI"`
}

// Configured reports whether all credentials are present.
func (c GoogleConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURI != ""
}

// GoogleProvider implements the authorization-code flow against Google.
// The code exchange yields an OpenID Connect id_token, which is validated
// against Google's published signing keys before any claim is trusted.
type GoogleProvider struct {
	oauth    *oauth2.Config
	validate func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// NewGoogleProvider creates a Google provider, or nil when the application
// credentials are not configured.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	if !cfg.Configured() {
		return nil
	}
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		validate: idtoken.Validate,
	}
}

func (p *GoogleProvider) Name() string { return ProviderGoogle }

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*ExternalIdentity, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return nil, ErrIdentityIncomplete
	}

	payload, err := p.validate(ctx, rawID, p.oauth.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	ident := &ExternalIdentity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		ident.DisplayName = name
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		ident.EmailVerified = verified
	}
	if ident.Email == "" || ident.Subject == "" {
		return nil, ErrIdentityIncomplete
	}
	return ident, nil
}
