package preference

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Preferences is a user's per-account settings. Every user has at most one
// row; reads fall back to defaults when none has been saved yet.
type Preferences struct {
	UserID               uuid.UUID       `json:"-"`
	BusinessName         *string         `json:"businessName,omitempty"`
	BusinessType         *string         `json:"businessType,omitempty"`
	ReviewPlatforms      []string        `json:"reviewPlatforms"`
	DefaultEmailTemplate *uuid.UUID      `json:"defaultEmailTemplate,omitempty"`
	EmailSignature       *string         `json:"emailSignature,omitempty"`
	Timezone             string          `json:"timezone"`
	Language             string          `json:"language"`
	Notifications        json.RawMessage `json:"notifications"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// PlatformURLs holds a user's public review page links, one optional
// link per supported platform.
type PlatformURLs struct {
	UserID      uuid.UUID `json:"-"`
	Google      *string   `json:"google,omitempty"`
	Yelp        *string   `json:"yelp,omitempty"`
	Facebook    *string   `json:"facebook,omitempty"`
	Tripadvisor *string   `json:"tripadvisor,omitempty"`
	Trustpilot  *string   `json:"trustpilot,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultPreferences returns the settings a user starts with before
// saving anything.
func DefaultPreferences(userID uuid.UUID) *Preferences {
	return &Preferences{
		UserID:          userID,
		ReviewPlatforms: []string{},
		Timezone:        "UTC",
		Language:        "en",
		Notifications:   json.RawMessage(`{"emailUpdates":true,"campaignAlerts":true}`),
	}
}
