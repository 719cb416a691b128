// Package authx performs the local, non-network check of a cached bearer
// token: structural JWT shape plus expiry. The client holds no signing key,
// so signatures are not verified here — the server remains authoritative and
// rejects forged tokens on the first fetch.
package authx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nutrilog/client-go/internal/common"
)

// ValidateShape reports whether the token is a well-formed JWT that has not
// expired. Returns common.ErrInvalidToken for malformed tokens and
// common.ErrTokenExpired for expired ones.
func ValidateShape(tokenString string, now time.Time) error {
	if tokenString == "" {
		return common.ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return common.ErrInvalidToken
	}

	// Tokens without an exp claim are accepted; expiry is enforced
	// server-side for those.
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return common.ErrTokenExpired
	}
	return nil
}
