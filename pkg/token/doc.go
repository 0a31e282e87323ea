// Package token implements compact signed payload tokens: a JSON payload with
// a truncated HMAC-SHA256 signature. They are used where a value must round
// trip through an untrusted client and come back intact, such as the OAuth
// anti-forgery state parameter, without requiring any server-side storage.
package token
