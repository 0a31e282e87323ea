package auth

import "time"

// Authentication providers a user record can originate from.
const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// User represents a user account row. PasswordHash is nil for
// federation-only accounts; OTPCode and OTPExpiresAt are always set and
// cleared together.
type User struct {
	ID           int64
	Email        string
	PasswordHash *string
	DisplayName  *string
	Provider     string
	ProviderID   *string
	OTPCode      *string
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can authenticate with a local
// password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// NewUser carries the fields of a record to be inserted. The store assigns
// the surrogate id and timestamps.
type NewUser struct {
	Email        string
	PasswordHash *string
	DisplayName  *string
	Provider     string
	ProviderID   *string
}
