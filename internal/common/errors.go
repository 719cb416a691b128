// Package common defines shared constants and sentinel errors used across
// the client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Remote collaborator errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")

	// Onboarding errors.
	ErrOnboardingIncomplete = errors.New("onboarding incomplete")
)
