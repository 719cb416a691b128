// Package models defines the client-side data model: the cached user profile
// and the credential pair stored on the device.
package models

import "encoding/json"

// Profile is the snapshot of server-held profile fields cached on the device.
//
// The known fields are strict; anything else the server sends is preserved
// verbatim in Extra so a round-trip through the cache never drops data the
// client does not understand.
type Profile struct {
	Email                string   `json:"email"`
	FirstName            string   `json:"firstName"`
	LastName             string   `json:"lastName"`
	HeightCm             float64  `json:"heightCm"`
	WeightKg             float64  `json:"weightKg"`
	DateOfBirth          string   `json:"dateOfBirth"`
	DietaryPreferences   []string `json:"dietaryPreferences"`
	ActivityLevel        string   `json:"activityLevel"`
	FitnessGoals         []string `json:"fitnessGoals"`
	ProfileSetupComplete bool     `json:"profileSetupComplete"`

	// Extra holds unknown fields exactly as received.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownProfileFields lists the JSON keys mapped onto strict struct fields.
var knownProfileFields = map[string]struct{}{
	"email":                {},
	"firstName":            {},
	"lastName":             {},
	"heightCm":             {},
	"weightKg":             {},
	"dateOfBirth":          {},
	"dietaryPreferences":   {},
	"activityLevel":        {},
	"fitnessGoals":         {},
	"profileSetupComplete": {},
}

// profileAlias avoids recursing into the custom (un)marshallers.
type profileAlias Profile

func (p *Profile) UnmarshalJSON(data []byte) error {
	var alias profileAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if _, known := knownProfileFields[k]; known {
			delete(raw, k)
		}
	}
	if len(raw) == 0 {
		raw = nil
	}

	*p = Profile(alias)
	p.Extra = raw
	return nil
}

func (p Profile) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(profileAlias(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		if _, known := knownProfileFields[k]; known {
			continue
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}
