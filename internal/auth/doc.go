// Package auth classifies a presented credential into an access tier.
//
// The service knows two static shared secrets: a read-only key and an
// admin key. A request's Authorization header is reduced to a token with
// ExtractToken and then classified by the Gate. Classification is pure:
// the gate holds no state beyond the configured secrets and never
// returns an error — callers interpret false as "deny".
//
// Tiers:
//
//	none   — token matches neither secret
//	reader — token matches the read-only key
//	admin  — token matches the admin key
//
// The boundary layer maps a failed AllowAny to 401 and a failed
// AllowAdmin (with a valid reader token) to 403.
package auth
