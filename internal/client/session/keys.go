// Package session implements cold-start session resolution for the client:
// credential lookup over the device key-value store, onboarding-completion
// evaluation, server-flag reconciliation, and the resolver state machine
// tying them together.
package session

import "strings"

// Storage key layout. The generic slots hold the "current/last" credential
// when the active identity is not yet known; scoped keys namespace cached
// sessions per identity so several accounts can coexist on one device.
const (
	genericTokenKey   = "auth_token"
	genericProfileKey = "user_data"
	lastIdentityKey   = "last_identity"

	scopedTokenPrefix   = "auth_token_"
	scopedProfilePrefix = "user_data_"
)

// NormalizeIdentity canonicalizes an email for use as a key fragment.
// Key derivation is a pure function of the normalized string.
func NormalizeIdentity(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scopedTokenKey(identity string) string {
	return scopedTokenPrefix + NormalizeIdentity(identity)
}

func scopedProfileKey(identity string) string {
	return scopedProfilePrefix + NormalizeIdentity(identity)
}
