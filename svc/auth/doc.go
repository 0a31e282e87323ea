// Package auth is the credential-issuance core of the expense tracker:
// local email/password signup and login, OAuth federation with external
// identity providers, and OTP-driven password reset. Every successful
// operation resolves a user record and issues a signed bearer token.
//
// The package holds no mutable process state. All persistence goes through
// the UserStore interface, whose OTP consumption must be a single atomic
// conditional update so a code can never be redeemed twice.
package auth
