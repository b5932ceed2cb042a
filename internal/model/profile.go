package model

import "time"

// Identity is the read-only projection of an authenticated user issued by the
// external identity provider.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// DefaultSubscription is assigned to every lazily created profile.
const DefaultSubscription = "free"

// Profile is the application-side record of an identity, created on first use.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Subscription string    `json:"subscription"`
	CreatedAt    time.Time `json:"created_at"`
}
