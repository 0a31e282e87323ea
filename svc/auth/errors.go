package auth

import "errors"

// General authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// OTP errors. Invalid code and expired code deliberately collapse into one
// kind so responses cannot be used as an oracle for which half failed.
var (
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")
)

// OAuth federation errors
var (
	ErrFederationNotConfigured = errors.New("oauth provider not configured")
	ErrExchangeFailed          = errors.New("failed to exchange code for token")
	ErrIdentityIncomplete      = errors.New("identity provider returned incomplete claims")
	ErrUnverifiedEmail         = errors.New("email not verified by provider")
	ErrInvalidState            = errors.New("invalid or expired oauth state")
)

// ErrStore is the catch-all classification for persistence failures that are
// not otherwise recognized. The underlying detail is logged, never returned
// to clients.
var ErrStore = errors.New("storage failure")
