// Package jwt issues and verifies the service's bearer tokens: compact,
// self-contained HS256 credentials carrying the user id as subject, the
// user's email, and an absolute expiry.
//
// Tokens are stateless; there is no revocation list or server-side session.
// The signing secret lives in process-wide configuration loaded once at
// startup. Verify is exported as the contract consumed by token-checking
// middleware in other services.
package jwt
