package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies local passwords with bcrypt. The
// plaintext is pre-hashed with SHA-256 and base64-encoded before bcrypt sees
// it, lifting bcrypt's 72-byte input ceiling so arbitrarily long passwords
// stay secure instead of being silently truncated. The resulting bcrypt
// string is self-describing: algorithm, cost and salt are all recoverable
// from the output.
type PasswordHasher struct {
	cost int
}

// HasherOption configures a PasswordHasher.
type HasherOption func(*PasswordHasher)

// WithBcryptCost sets the bcrypt cost parameter.
func WithBcryptCost(cost int) HasherOption {
	return func(h *PasswordHasher) {
		h.cost = cost
	}
}

// NewPasswordHasher creates a hasher with bcrypt's default cost unless
// overridden.
func NewPasswordHasher(opts ...HasherOption) *PasswordHasher {
	h := &PasswordHasher{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash produces a self-describing hash of the plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. It never returns
// an error: malformed or foreign hashes simply fail verification.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(plaintext)) == nil
}

// prehash collapses the password to a fixed-length digest. Base64 keeps the
// bcrypt input free of NUL bytes, which bcrypt treats as terminators.
func prehash(plaintext string) []byte {
	sum := sha256.Sum256([]byte(plaintext))
	out := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(out, sum[:])
	return out
}
