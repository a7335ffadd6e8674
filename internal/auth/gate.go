package auth

import (
	"crypto/subtle"
	"strings"
)

// Gate validates presented tokens against the two configured secrets.
//
// Comparison is constant-time. A Gate is immutable after construction
// and safe for concurrent use.
type Gate struct {
	readSecret  string
	adminSecret string
}

// NewGate creates a gate for the given read-only and admin secrets.
func NewGate(readSecret, adminSecret string) *Gate {
	return &Gate{
		readSecret:  readSecret,
		adminSecret: adminSecret,
	}
}

// ExtractToken reduces a raw Authorization header value to a token.
//
// A value of the form "<scheme> <token>" (exactly two whitespace-separated
// parts) yields the token; any other value is returned unchanged, so a
// bare secret with no scheme prefix is also accepted. A missing header
// yields the empty token.
func ExtractToken(rawHeader string) string {
	parts := strings.Fields(rawHeader)
	if len(parts) == 2 {
		return parts[1]
	}
	return rawHeader
}

// AllowAny reports whether the token grants at least read access:
// it must equal the read-only secret or the admin secret.
func (g *Gate) AllowAny(token string) bool {
	return tokenEqual(token, g.readSecret) || tokenEqual(token, g.adminSecret)
}

// AllowAdmin reports whether the token grants admin access:
// it must equal the admin secret.
func (g *Gate) AllowAdmin(token string) bool {
	return tokenEqual(token, g.adminSecret)
}

// tokenEqual compares a presented token against a secret in constant
// time. An empty secret matches nothing, so a misconfigured gate fails
// closed.
func tokenEqual(token, secret string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
