// Package api is the REST collaborator of the session layer: bearer-token
// calls against the nutrition backend. Only the operations the session core
// needs are modelled.
package api

import (
	"context"

	"github.com/nutrilog/client-go/internal/client/models"
)

// Client is the remote surface consumed by the session layer.
//
// Implementations map transport failures onto common.ErrUnavailable and
// authentication failures onto common.ErrUnauthorized so callers can use
// errors.Is without knowing the wire format.
type Client interface {
	// Login exchanges credentials for a bearer token and the current profile.
	Login(ctx context.Context, email string, password []byte) (string, *models.Profile, error)

	// CurrentUser fetches the profile the token belongs to.
	CurrentUser(ctx context.Context, token string) (*models.Profile, error)

	// UpdateProfile applies a partial update and returns the updated profile.
	UpdateProfile(ctx context.Context, token string, patch ProfilePatch) (*models.Profile, error)
}

// ProfilePatch carries partial profile fields for PUT /profile. Nil fields
// are omitted from the request body.
type ProfilePatch struct {
	FirstName            *string   `json:"firstName,omitempty"`
	LastName             *string   `json:"lastName,omitempty"`
	HeightCm             *float64  `json:"heightCm,omitempty"`
	WeightKg             *float64  `json:"weightKg,omitempty"`
	DateOfBirth          *string   `json:"dateOfBirth,omitempty"`
	DietaryPreferences   *[]string `json:"dietaryPreferences,omitempty"`
	ActivityLevel        *string   `json:"activityLevel,omitempty"`
	FitnessGoals         *[]string `json:"fitnessGoals,omitempty"`
	ProfileSetupComplete *bool     `json:"profileSetupComplete,omitempty"`
}
