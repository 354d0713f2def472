package types

import "time"

// DirectoryUser is an identity-provider account as seen through the admin
// lookup API. It is never persisted locally.
type DirectoryUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	GivenName string    `json:"givenName,omitempty"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}
