package auth

import (
	"context"
	"time"
)

// UserStore defines the persistence operations required by the auth core.
// All mutations are durable immediately. Implementations classify failures:
// unknown email lookups return ErrUserNotFound, unique violations on insert
// return ErrEmailAlreadyExists, anything else wraps ErrStore.
type UserStore interface {
	// FindByEmail returns the user with the given email or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Insert creates a new user record and returns its assigned id.
	// Returns ErrEmailAlreadyExists if the email is taken.
	Insert(ctx context.Context, u NewUser) (int64, error)

	// SetOTP stores a pending reset code and its expiry for the user,
	// replacing any previous pending code.
	SetOTP(ctx context.Context, email, code string, expiresAt time.Time) error

	// ConsumeOTP atomically checks that the stored code matches and has not
	// expired, clearing both OTP fields in the same operation. It reports
	// whether the code was valid. The check and clear MUST be one store
	// operation so two concurrent verifications can never both succeed.
	ConsumeOTP(ctx context.Context, email, code string) (bool, error)

	// UpdatePassword replaces the user's password hash.
	UpdatePassword(ctx context.Context, email, newHash string) error
}
